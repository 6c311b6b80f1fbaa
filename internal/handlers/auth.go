package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/excellence-hub/excellence/internal/auth"
	"github.com/excellence-hub/excellence/internal/models"
	"github.com/excellence-hub/excellence/internal/services"
	pkghttp "github.com/excellence-hub/excellence/pkg/http"
)

// LoginService runs the login workflow.
type LoginService interface {
	Login(ctx context.Context, req services.LoginRequest) (*models.LoginResult, error)
}

// PasswordChanger changes the password of an authenticated account.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, id models.Identity, oldPassword, newPassword, confirmPassword string) error
}

// RecoveryStatusProvider reports an account's failure count.
type RecoveryStatusProvider interface {
	Status(ctx context.Context, id models.Identity) (*models.RecoveryStatus, error)
}

// RecoveryRequester queues a recovery request for the administrator.
type RecoveryRequester interface {
	RequestRecovery(ctx context.Context, id models.Identity) (*models.Notification, error)
}

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	login     LoginService
	passwords PasswordChanger
	status    RecoveryStatusProvider
	recovery  RecoveryRequester
	ips       *pkghttp.ClientIPResolver
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(login LoginService, passwords PasswordChanger, status RecoveryStatusProvider, recovery RecoveryRequester, ips *pkghttp.ClientIPResolver) *AuthHandler {
	return &AuthHandler{
		login:     login,
		passwords: passwords,
		status:    status,
		recovery:  recovery,
		ips:       ips,
	}
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	IdentityRequest
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	State       string          `json:"state"`
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Identity    models.Identity `json:"identity"`
}

// LoginFailureDetails travels in ErrorResponse.Details of a failed login.
type LoginFailureDetails struct {
	State             string `json:"state"`
	FailedAttempts    int    `json:"failed_attempts"`
	RecoveryAvailable bool   `json:"recovery_available"`
}

// ChangePasswordRequest is the body of POST /auth/password.
type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// RecoveryRequestResponse is returned when a request has been queued.
type RecoveryRequestResponse struct {
	RequestID string    `json:"request_id"`
	Date      time.Time `json:"date"`
	Message   string    `json:"message"`
}

func (h *AuthHandler) decodeIdentity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	var req IdentityRequest
	if err := pkghttp.DecodeJSON(w, r, &req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return models.Identity{}, false
	}
	if err := ValidateRequest(req); err != nil {
		writeServiceError(w, err)
		return models.Identity{}, false
	}
	return req.Identity(), true
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := pkghttp.DecodeJSON(w, r, &req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		writeServiceError(w, err)
		return
	}

	result, err := h.login.Login(r.Context(), services.LoginRequest{
		Identity:  req.Identity(),
		Password:  req.Password,
		IPAddress: h.ips.ClientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, models.ErrAuthenticationFailed) && result != nil {
			pkghttp.WriteErrorWithDetails(w, http.StatusUnauthorized, pkghttp.CodeUnauthorized, "authentication failed",
				LoginFailureDetails{
					State:             result.State,
					FailedAttempts:    result.FailedAttempts,
					RecoveryAvailable: result.RecoveryAvailable,
				})
			return
		}
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, LoginResponse{
		State:       result.State,
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   result.ExpiresAt,
		Identity:    result.Identity,
	})
}

// RecoveryStatus handles POST /auth/recovery-status
func (h *AuthHandler) RecoveryStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.decodeIdentity(w, r)
	if !ok {
		return
	}

	status, err := h.status.Status(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	pkghttp.WriteJSON(w, http.StatusOK, status)
}

// RequestRecovery handles POST /auth/recovery-requests. Requests are only
// accepted once the account has reached the lockout threshold.
func (h *AuthHandler) RequestRecovery(w http.ResponseWriter, r *http.Request) {
	id, ok := h.decodeIdentity(w, r)
	if !ok {
		return
	}

	status, err := h.status.Status(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !status.RecoveryAvailable {
		writeServiceError(w, models.ErrRecoveryNotAvailable)
		return
	}

	n, err := h.recovery.RequestRecovery(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusAccepted, RecoveryRequestResponse{
		RequestID: n.ID,
		Date:      n.Date,
		Message:   "The administrator has been asked to unlock your account.",
	})
}

// ChangePassword handles POST /auth/password for the token's own account.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req ChangePasswordRequest
	if err := pkghttp.DecodeJSON(w, r, &req); err != nil {
		pkghttp.WriteBadRequest(w, "invalid request body")
		return
	}

	err := h.passwords.ChangePassword(r.Context(), claims.Identity(), req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}
