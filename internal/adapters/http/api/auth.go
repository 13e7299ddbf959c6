package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pranav-2399/nexus-website/internal/domain/model"
	"github.com/pranav-2399/nexus-website/pkg/metrics"
)

// AdminAuth checks Bearer tokens on admin routes.
type AdminAuth struct {
	plain  [][]byte
	hashed [][]byte
}

// NewAdminAuth accepts plain tokens and bcrypt hashes ("$2a$...", "$2b$...").
// Blank entries are ignored.
func NewAdminAuth(tokens []string) *AdminAuth {
	a := &AdminAuth{}
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		switch {
		case t == "":
		case strings.HasPrefix(t, "$2"):
			a.hashed = append(a.hashed, []byte(t))
		default:
			a.plain = append(a.plain, []byte(t))
		}
	}
	return a
}

// Enabled reports whether any token is configured.
func (a *AdminAuth) Enabled() bool {
	return len(a.plain)+len(a.hashed) > 0
}

// Check validates the Authorization header of r.
func (a *AdminAuth) Check(r *http.Request) error {
	if !a.Enabled() {
		return ErrAdminDisabled
	}
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: missing bearer token", model.ErrUnauthorized)
	}
	if a.valid([]byte(strings.TrimSpace(token))) {
		return nil
	}
	return fmt.Errorf("%w: invalid token", model.ErrUnauthorized)
}

func (a *AdminAuth) valid(token []byte) bool {
	match := 0
	for _, p := range a.plain {
		match |= subtle.ConstantTimeCompare(p, token)
	}
	if match == 1 {
		return true
	}
	for _, h := range a.hashed {
		if bcrypt.CompareHashAndPassword(h, token) == nil {
			return true
		}
	}
	return false
}

// AdminOnly rejects requests without a valid admin token.
func (a *AdminAuth) AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.Check(r); err != nil {
			metrics.RecordErrorByComponent("auth", "rejected")
			if a.Enabled() {
				w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
			}
			writeServiceError(w, err)
			return
		}
		next(w, r)
	}
}
