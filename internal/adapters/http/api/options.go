package api

import (
	"net/http"

	"github.com/pranav-2399/nexus-website/pkg/logger"
)

const (
	defaultMaxBodyBytes   = 1 << 20
	defaultMaxUploadBytes = 64 << 20
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAdminTokens sets the accepted admin Bearer tokens. Entries that look
// like bcrypt hashes are compared as hashes.
func WithAdminTokens(tokens []string) Option {
	return func(s *Server) { s.auth = NewAdminAuth(tokens) }
}

// WithMaxBodyBytes caps JSON request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithMaxUploadBytes caps a whole multipart upload request.
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUpload = n
		}
	}
}

// WithMediaHandler serves locally stored images under /media/.
func WithMediaHandler(h http.Handler) Option {
	return func(s *Server) { s.media = h }
}
