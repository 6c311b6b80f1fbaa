package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPassword(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		accountType string
		subRole     string
		expected    string
	}{
		{"student with space", "Jane Doe", "student", "", "janedoe123"},
		{"upper case staff", "NOUFAL ADANY", "master", "", "noufaladany123"},
		{"sub role ignored", "Library", "mhs", "library", "library123"},
		{"tabs and newlines stripped", " Ali\t Khan\n", "student", "", "alikhan123"},
		{"empty name", "", "student", "", ""},
		{"whitespace only name", "   ", "student", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DefaultPassword(tt.displayName, tt.accountType, tt.subRole))
		})
	}
}

func TestDefaultPassword_Deterministic(t *testing.T) {
	first := DefaultPassword("Jane Doe", "student", "")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DefaultPassword("Jane Doe", "student", ""))
	}
}

func TestDefaultPassword_IgnoresTypeAndSubRole(t *testing.T) {
	assert.Equal(t,
		DefaultPassword("Jane Doe", "student", ""),
		DefaultPassword("Jane Doe", "mhs", "library"),
	)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "janedoe", NormalizeName("Jane Doe"))
	assert.Equal(t, "janedoe", NormalizeName("  JANE   DOE "))
	assert.Equal(t, "", NormalizeName(""))
}

func TestMatchPassword_Plaintext(t *testing.T) {
	assert.True(t, MatchPassword("janedoe123", "janedoe123"))
	assert.False(t, MatchPassword("janedoe123", "JaneDoe123"))
	assert.False(t, MatchPassword("janedoe123", ""))
	assert.False(t, MatchPassword("", ""))
}

func TestMatchPassword_Hashed(t *testing.T) {
	hash, err := HashPassword("n3w-secret")
	require.NoError(t, err)
	assert.True(t, IsHashed(hash))

	assert.True(t, MatchPassword(hash, "n3w-secret"))
	assert.False(t, MatchPassword(hash, "wrong"))
	assert.False(t, MatchPassword(hash, hash))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestIsHashed(t *testing.T) {
	assert.False(t, IsHashed("janedoe123"))
	assert.True(t, IsHashed("$2a$12$abcdefghijklmnopqrstuv"))
	assert.True(t, IsHashed("$2b$12$abcdefghijklmnopqrstuv"))
}

func TestMatchPassword_BcryptPrefixedPlaintext(t *testing.T) {
	for _, stored := range []string{"$2a$mysecret", "$2b$", "$2y$99$not-a-real-hash"} {
		t.Run(stored, func(t *testing.T) {
			assert.True(t, MatchPassword(stored, stored))
			assert.False(t, MatchPassword(stored, "janedoe123"))
		})
	}
}
