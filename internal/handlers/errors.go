package handlers

import (
	"errors"
	"net/http"

	"github.com/excellence-hub/excellence/internal/models"
	pkghttp "github.com/excellence-hub/excellence/pkg/http"
)

// writeServiceError maps a service error onto its HTTP status and code.
// Unknown errors become 500 without echoing the cause.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyField):
		pkghttp.WriteError(w, http.StatusBadRequest, pkghttp.CodeEmptyField, err.Error())
	case errors.Is(err, models.ErrMismatch):
		pkghttp.WriteError(w, http.StatusBadRequest, pkghttp.CodeMismatch, err.Error())
	case errors.Is(err, models.ErrInvalidInput):
		pkghttp.WriteBadRequest(w, err.Error())
	case errors.Is(err, models.ErrWrongOldPassword):
		pkghttp.WriteError(w, http.StatusUnauthorized, pkghttp.CodeWrongOldPassword, "old password is incorrect")
	case errors.Is(err, models.ErrAuthenticationFailed):
		pkghttp.WriteUnauthorized(w, "authentication failed")
	case errors.Is(err, models.ErrPermissionDenied):
		pkghttp.WriteForbidden(w, "permission denied")
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "not found")
	case errors.Is(err, models.ErrRecoveryNotAvailable):
		pkghttp.WriteConflict(w, pkghttp.CodeRecoveryNotAvailable, models.ErrRecoveryNotAvailable.Error())
	case errors.Is(err, models.ErrStorage):
		pkghttp.WriteServiceUnavailable(w, "storage unavailable, try again later")
	default:
		pkghttp.WriteInternalError(w, "internal server error")
	}
}
