package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/excellence-hub/excellence/internal/models"
	pkghttp "github.com/excellence-hub/excellence/pkg/http"
)

type claimsKey struct{}

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errMalformedBearer      = errors.New("invalid authorization header format")
)

// bearerToken returns the token of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errMissingAuthorization
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errMalformedBearer
	}
	return token, nil
}

// AuthMiddleware accepts requests carrying a valid access token and stores its
// claims in the request context.
func AuthMiddleware(tm *TokenManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				pkghttp.WriteUnauthorized(w, err.Error())
				return
			}

			claims, err := tm.ValidateToken(token)
			if err != nil {
				pkghttp.WriteUnauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdministrator rejects every identity except admin with 403.
// It expects AuthMiddleware earlier in the chain.
func RequireAdministrator(admin models.Identity) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r)
			switch {
			case claims == nil:
				pkghttp.WriteUnauthorized(w, "unauthorized")
			case !claims.Identity().SameAccount(admin):
				pkghttp.WriteForbidden(w, "forbidden: administrator only")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// GetUserFromContext returns the claims stored by AuthMiddleware, or nil.
func GetUserFromContext(r *http.Request) *models.TokenClaims {
	claims, _ := r.Context().Value(claimsKey{}).(*models.TokenClaims)
	return claims
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *models.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}
