package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token type constants
const (
	TokenTypeAccess = "access"
)

// TokenClaims carries the authenticated identity inside an access token.
type TokenClaims struct {
	Type        string `json:"type"`
	AccountKey  string `json:"account_key"`
	Name        string `json:"name"`
	AccountType string `json:"account_type"`
	Role        string `json:"role,omitempty"`
	SubRole     string `json:"sub_role,omitempty"`
	jwt.RegisteredClaims
}

// Identity rebuilds the account identity from the claims.
func (c *TokenClaims) Identity() Identity {
	return Identity{
		Name:    c.Name,
		Type:    AccountType(c.AccountType),
		Role:    c.Role,
		SubRole: c.SubRole,
	}
}

// Login workflow states
const (
	LoginStateIdle     = "idle"
	LoginStateChecking = "checking"
	LoginStateSuccess  = "success"
	LoginStateFailure  = "failure"
)

// LoginResult is the outcome of one login attempt.
type LoginResult struct {
	State             string
	Identity          Identity
	AccessToken       string
	ExpiresAt         time.Time
	FailedAttempts    int
	RecoveryAvailable bool
}
