package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/excellence-hub/excellence/internal/auth"
	"github.com/excellence-hub/excellence/internal/models"
	"github.com/excellence-hub/excellence/internal/services"
	pkghttp "github.com/excellence-hub/excellence/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewTestRequest creates an HTTP request with a JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithIdentity puts claims for id into the request context, as AuthMiddleware would.
func WithIdentity(req *http.Request, id models.Identity) *http.Request {
	claims := &models.TokenClaims{
		Type:        models.TokenTypeAccess,
		AccountKey:  id.AccountKey(),
		Name:        id.Name,
		AccountType: string(id.Type),
		Role:        id.Role,
		SubRole:     id.SubRole,
	}
	return req.WithContext(auth.WithClaims(req.Context(), claims))
}

// WithChiRouteContext sets chi URL parameters on a request built outside a router.
func WithChiRouteContext(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AssertJSONResponse checks the status and decodes the JSON body into target.
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	if target != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks the status and error code of an error response.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	t.Helper()
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// MockLoginService implements LoginService for testing
type MockLoginService struct {
	LoginFunc func(ctx context.Context, req services.LoginRequest) (*models.LoginResult, error)
}

func (m *MockLoginService) Login(ctx context.Context, req services.LoginRequest) (*models.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &models.LoginResult{State: models.LoginStateSuccess, Identity: req.Identity, AccessToken: "token"}, nil
}

// MockPasswordChanger implements PasswordChanger for testing
type MockPasswordChanger struct {
	ChangePasswordFunc func(ctx context.Context, id models.Identity, oldPassword, newPassword, confirmPassword string) error
}

func (m *MockPasswordChanger) ChangePassword(ctx context.Context, id models.Identity, oldPassword, newPassword, confirmPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, id, oldPassword, newPassword, confirmPassword)
	}
	return nil
}

// MockRecoveryStatusProvider implements RecoveryStatusProvider for testing
type MockRecoveryStatusProvider struct {
	StatusFunc func(ctx context.Context, id models.Identity) (*models.RecoveryStatus, error)
}

func (m *MockRecoveryStatusProvider) Status(ctx context.Context, id models.Identity) (*models.RecoveryStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, id)
	}
	return &models.RecoveryStatus{}, nil
}

// MockRecoveryService implements RecoveryRequester and RecoveryAdministration for testing
type MockRecoveryService struct {
	RequestRecoveryFunc func(ctx context.Context, id models.Identity) (*models.Notification, error)
	ListRequestsFunc    func(ctx context.Context, actor models.Identity) ([]models.Notification, error)
	UnlockRequestFunc   func(ctx context.Context, actor models.Identity, requestID string) (*models.Identity, error)
	UnlockFunc          func(ctx context.Context, actor, id models.Identity) error
}

func (m *MockRecoveryService) RequestRecovery(ctx context.Context, id models.Identity) (*models.Notification, error) {
	if m.RequestRecoveryFunc != nil {
		return m.RequestRecoveryFunc(ctx, id)
	}
	return &models.Notification{ID: "req-1", Type: models.NotificationTypePasswordRecovery}, nil
}

func (m *MockRecoveryService) ListRequests(ctx context.Context, actor models.Identity) ([]models.Notification, error) {
	if m.ListRequestsFunc != nil {
		return m.ListRequestsFunc(ctx, actor)
	}
	return []models.Notification{}, nil
}

func (m *MockRecoveryService) UnlockRequest(ctx context.Context, actor models.Identity, requestID string) (*models.Identity, error) {
	if m.UnlockRequestFunc != nil {
		return m.UnlockRequestFunc(ctx, actor, requestID)
	}
	return nil, models.ErrNotFound
}

func (m *MockRecoveryService) Unlock(ctx context.Context, actor, id models.Identity) error {
	if m.UnlockFunc != nil {
		return m.UnlockFunc(ctx, actor, id)
	}
	return nil
}

// MockLockedAccountLister implements LockedAccountLister for testing
type MockLockedAccountLister struct {
	LockedAccountsFunc func(ctx context.Context) ([]models.LockedAccount, error)
}

func (m *MockLockedAccountLister) LockedAccounts(ctx context.Context) ([]models.LockedAccount, error) {
	if m.LockedAccountsFunc != nil {
		return m.LockedAccountsFunc(ctx)
	}
	return []models.LockedAccount{}, nil
}

// MockRosterProvider implements RosterProvider for testing
type MockRosterProvider struct {
	NamesFunc func(ctx context.Context, accountType models.AccountType, role, subRole string) ([]string, error)
}

func (m *MockRosterProvider) Names(ctx context.Context, accountType models.AccountType, role, subRole string) ([]string, error) {
	if m.NamesFunc != nil {
		return m.NamesFunc(ctx, accountType, role, subRole)
	}
	return []string{}, nil
}

// MockPinger implements Pinger for testing
type MockPinger struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
