package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/excellence-hub/excellence/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-32-characters-long!!"

var (
	testAdmin   = models.Identity{Name: "NOUFAL ADANY", Type: models.AccountTypeMaster}
	testStudent = models.Identity{Name: "Jane Doe", Type: models.AccountTypeStudent}
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	id := models.Identity{Name: "Library", Type: models.AccountTypeMHS, Role: "other", SubRole: "library"}

	token, expiresAt, err := tm.GenerateAccessToken(id)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity())
	assert.Equal(t, "mhs_library_library", claims.AccountKey)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_RejectsOtherSecret(t *testing.T) {
	token, _, err := NewTokenManager("another-secret-with-enough-chars", time.Hour).GenerateAccessToken(testStudent)
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm := NewTokenManager(testSecret, -time.Minute)
	token, _, err := tm.GenerateAccessToken(testStudent)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsTamperedIdentity(t *testing.T) {
	claims := &models.TokenClaims{
		Type:        models.TokenTypeAccess,
		AccountKey:  testStudent.AccountKey(),
		Name:        testAdmin.Name,
		AccountType: string(testAdmin.Type),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenManager(testSecret, time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	token, _, err := tm.GenerateAccessToken(testStudent)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
		{"lower-case scheme", "bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen *models.TokenClaims
			handler := AuthMiddleware(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetUserFromContext(r)
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, seen)
				assert.Equal(t, testStudent.Name, seen.Name)
			} else {
				assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
			}
		})
	}
}

func TestRequireAdministrator(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	handler := AuthMiddleware(tm)(RequireAdministrator(testAdmin)(okHandler()))

	tests := []struct {
		name       string
		identity   models.Identity
		wantStatus int
	}{
		{"administrator", testAdmin, http.StatusOK},
		{"administrator name different case", models.Identity{Name: "noufal adany", Type: models.AccountTypeMaster}, http.StatusOK},
		{"student", testStudent, http.StatusForbidden},
		{"same name wrong type", models.Identity{Name: "NOUFAL ADANY", Type: models.AccountTypeStudent}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, _, err := tm.GenerateAccessToken(tt.identity)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireAdministrator_NoClaims(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireAdministrator(testAdmin)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
