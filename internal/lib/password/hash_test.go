package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHash_And_CompareHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "simple password", password: "secret123"},
		{name: "long password", password: "a-fairly-long-password-with-dashes"},
		{name: "password with symbols", password: "p@$$w0rd!#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := GetHash(tt.password)
			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)

			assert.NoError(t, CompareHash(hash, tt.password))
			assert.Error(t, CompareHash(hash, tt.password+"x"))
		})
	}
}

func TestGetHash_DifferentHashesForSamePassword(t *testing.T) {
	hash1, err := GetHash("secret123")
	require.NoError(t, err)
	hash2, err := GetHash("secret123")
	require.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, hash1, hash2)
	assert.NoError(t, CompareHash(hash1, "secret123"))
	assert.NoError(t, CompareHash(hash2, "secret123"))
}
