package models

import (
	"fmt"
	"strings"

	"github.com/excellence-hub/excellence/pkg/auth"
)

// AccountType is the broad category of an account.
type AccountType string

const (
	AccountTypeStudent AccountType = "student"
	AccountTypeMaster  AccountType = "master" // staff / teacher
	AccountTypeMHS     AccountType = "mhs"    // organisation role holder
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeStudent, AccountTypeMaster, AccountTypeMHS:
		return true
	}
	return false
}

// ParseAccountType converts the wire value into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown account type %q", ErrInvalidInput, s)
	}
	return t, nil
}

// Identity names an account. Role and SubRole are optional.
type Identity struct {
	Name    string      `json:"name"`
	Type    AccountType `json:"account_type"`
	Role    string      `json:"role,omitempty"`
	SubRole string      `json:"sub_role,omitempty"`
}

// AccountKey is the string used for credential lookup and attempt counting.
//
// Format: <type>_<normalized name>[_<subRole>|_<role>]. Two display names that
// normalize to the same string share a key.
func (id Identity) AccountKey() string {
	key := string(id.Type) + "_" + auth.NormalizeName(id.Name)
	switch {
	case id.SubRole != "":
		key += "_" + id.SubRole
	case id.Role != "":
		key += "_" + id.Role
	}
	return key
}

// DefaultPassword returns the deterministic password for this identity.
func (id Identity) DefaultPassword() string {
	return auth.DefaultPassword(id.Name, string(id.Type), id.SubRole)
}

// Validate checks the fields every operation needs.
func (id Identity) Validate() error {
	if strings.TrimSpace(id.Name) == "" {
		return fmt.Errorf("%w: name", ErrEmptyField)
	}
	if !id.Type.Valid() {
		return fmt.Errorf("%w: unknown account type %q", ErrInvalidInput, id.Type)
	}
	return nil
}

// Describe renders the identity the way it appears in administrator messages,
// e.g. "Jane Doe (student)" or "Ali (mhs - other (library))".
func (id Identity) Describe() string {
	var b strings.Builder
	b.WriteString(id.Name)
	b.WriteString(" (")
	b.WriteString(string(id.Type))
	if id.Role != "" {
		b.WriteString(" - ")
		b.WriteString(id.Role)
	}
	if id.SubRole != "" {
		b.WriteString(" (")
		b.WriteString(id.SubRole)
		b.WriteString(")")
	}
	b.WriteString(")")
	return b.String()
}

// SameAccount reports whether both identities resolve to the same account key.
func (id Identity) SameAccount(other Identity) bool {
	return id.AccountKey() == other.AccountKey()
}
