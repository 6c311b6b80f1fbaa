package handlers

import (
	"context"
	"net/http"

	"github.com/excellence-hub/excellence/internal/auth"
	"github.com/excellence-hub/excellence/internal/models"
	pkghttp "github.com/excellence-hub/excellence/pkg/http"
	"github.com/go-chi/chi/v5"
)

// RecoveryAdministration is what the administrator can do with recovery requests.
type RecoveryAdministration interface {
	ListRequests(ctx context.Context, actor models.Identity) ([]models.Notification, error)
	UnlockRequest(ctx context.Context, actor models.Identity, requestID string) (*models.Identity, error)
	Unlock(ctx context.Context, actor, id models.Identity) error
}

// LockedAccountLister lists counters at or above the lockout threshold.
type LockedAccountLister interface {
	LockedAccounts(ctx context.Context) ([]models.LockedAccount, error)
}

// AdminHandler serves the administrator endpoints.
type AdminHandler struct {
	recovery RecoveryAdministration
	attempts LockedAccountLister
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(recovery RecoveryAdministration, attempts LockedAccountLister) *AdminHandler {
	return &AdminHandler{recovery: recovery, attempts: attempts}
}

// RecoveryRequestsResponse lists pending recovery requests.
type RecoveryRequestsResponse struct {
	Requests []models.Notification `json:"requests"`
	Total    int                   `json:"total"`
}

// UnlockResponse names the account that was unlocked.
type UnlockResponse struct {
	Unlocked   models.Identity `json:"unlocked"`
	AccountKey string          `json:"account_key"`
}

// LockedAccountsResponse lists locked accounts.
type LockedAccountsResponse struct {
	Accounts []models.LockedAccount `json:"accounts"`
	Total    int                    `json:"total"`
}

func actorFrom(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return models.Identity{}, false
	}
	return claims.Identity(), true
}

// ListRecoveryRequests handles GET /admin/recovery-requests
func (h *AdminHandler) ListRecoveryRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	requests, err := h.recovery.ListRequests(r.Context(), actor)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, RecoveryRequestsResponse{Requests: requests, Total: len(requests)})
}

// UnlockRecoveryRequest handles POST /admin/recovery-requests/{id}/unlock
func (h *AdminHandler) UnlockRecoveryRequest(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		pkghttp.WriteBadRequest(w, "request id is required")
		return
	}

	id, err := h.recovery.UnlockRequest(r.Context(), actor, requestID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, UnlockResponse{Unlocked: *id, AccountKey: id.AccountKey()})
}

// Unlock handles POST /admin/unlock with an identity body.
func (h *AdminHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req IdentityRequest
	if err := pkghttp.DecodeJSON(w, r, &req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		writeServiceError(w, err)
		return
	}

	id := req.Identity()
	if err := h.recovery.Unlock(r.Context(), actor, id); err != nil {
		writeServiceError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, UnlockResponse{Unlocked: id, AccountKey: id.AccountKey()})
}

// LockedAccounts handles GET /admin/login-attempts
func (h *AdminHandler) LockedAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.attempts.LockedAccounts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, LockedAccountsResponse{Accounts: accounts, Total: len(accounts)})
}
