package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"github.com/pranav-2399/nexus-website/internal/adapters/storage"
	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/pkg/logger"
	"github.com/pranav-2399/nexus-website/pkg/metrics"
)

const (
	sniffLen        = 512
	maxGalleryFiles = 30
)

// imageTypes maps accepted sniffed content types to object extensions.
var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadImage stores one image of the given kind and returns its asset.
func (s *Service) UploadImage(ctx context.Context, kind model.ImageKind, fh *multipart.FileHeader) (*model.Asset, error) {
	if s.objects == nil {
		return nil, ErrNoObjectStore
	}
	if fh == nil {
		return nil, fmt.Errorf("%w: file is required", model.ErrInvalid)
	}
	if fh.Size > s.maxUpload {
		metrics.RecordUploadRejected("too_large")
		return nil, fmt.Errorf("%w: %s is %d bytes, limit is %d", model.ErrTooLarge, fh.Filename, fh.Size, s.maxUpload)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open upload: %v", model.ErrInvalid, err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("%w: read upload: %v", model.ErrInvalid, err)
	}
	head = head[:n]
	if n == 0 {
		metrics.RecordUploadRejected("empty")
		return nil, fmt.Errorf("%w: %s is empty", model.ErrInvalid, fh.Filename)
	}
	contentType := http.DetectContentType(head)
	ext, ok := imageTypes[contentType]
	if !ok {
		metrics.RecordUploadRejected("type")
		return nil, fmt.Errorf("%w: %s is %s; allowed are jpeg, png, gif and webp", model.ErrUnsupportedMedia, fh.Filename, contentType)
	}

	name := string(kind) + "/" + uuid.NewString() + ext
	body := io.MultiReader(bytes.NewReader(head), io.LimitReader(f, s.maxUpload-int64(n)))
	url, err := s.objects.Put(ctx, name, contentType, body, fh.Size)
	if err != nil {
		metrics.RecordErrorByComponent("storage", "put")
		return nil, err
	}
	metrics.RecordUpload(string(kind), fh.Size)
	s.logger.Info(ctx, "image uploaded",
		logger.String("object", name),
		logger.Int64("bytes", fh.Size),
	)
	return &model.Asset{Name: name, URL: url, Size: fh.Size, ContentType: contentType, Kind: kind}, nil
}

// UploadGallery stores several gallery images. If one fails the ones already
// stored are scheduled for removal and the error is returned.
func (s *Service) UploadGallery(ctx context.Context, files []*multipart.FileHeader) ([]*model.Asset, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: at least one file is required", model.ErrInvalid)
	}
	if len(files) > maxGalleryFiles {
		return nil, fmt.Errorf("%w: at most %d files per upload", model.ErrInvalid, maxGalleryFiles)
	}
	assets := make([]*model.Asset, 0, len(files))
	for _, fh := range files {
		a, err := s.UploadImage(ctx, model.KindGallery, fh)
		if err != nil {
			urls := make([]string, len(assets))
			for i, done := range assets {
				urls[i] = done.URL
			}
			s.deleteObjects(ctx, urls)
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, nil
}

// DeleteImage schedules removal of an object given its name or public URL.
func (s *Service) DeleteImage(ctx context.Context, nameOrURL string) error {
	if s.objects == nil {
		return ErrNoObjectStore
	}
	name, ok := s.objects.NameFromURL(nameOrURL)
	if !ok {
		var err error
		if name, err = storage.CleanName(nameOrURL); err != nil {
			return fmt.Errorf("%w: file %q is not a stored image", model.ErrInvalid, nameOrURL)
		}
	}
	if !s.enqueue(ctx, model.Job{Kind: model.JobDeleteObject, Object: name}) {
		return s.DeleteObject(ctx, name)
	}
	return nil
}
