package model

import (
	"fmt"
	"strings"
)

// ImageKind says what an uploaded image is for. It prefixes the object name.
type ImageKind string

const (
	KindBanner    ImageKind = "banner"
	KindPoster    ImageKind = "poster"
	KindGallery   ImageKind = "gallery"
	KindTeam      ImageKind = "team"
	KindHighlight ImageKind = "highlight"
)

// ParseImageKind accepts the form values the admin dashboard sends.
func ParseImageKind(s string) (ImageKind, error) {
	switch k := ImageKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindBanner, KindPoster, KindGallery, KindTeam, KindHighlight:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown image type %q", ErrInvalid, s)
	}
}

// Asset is a stored image.
type Asset struct {
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Size        int64     `json:"size"`
	ContentType string    `json:"contentType"`
	Kind        ImageKind `json:"kind"`
}
