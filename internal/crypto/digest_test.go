package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Reference hashes published for the session server handshake.
func TestAuthDigest_KnownVectors(t *testing.T) {
	tests := []struct {
		serverID string
		want     string
	}{
		{"Notch", "4ed1f46bbe04bc756bcb17c0c7ce3e4632f06a48"},
		{"jeb_", "-7c9d5b0044c130109a5d7b5fb5c317c02b4e28c1"},
		{"simon", "88e16a1019277b15d58faf0541e11910eb756f6"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AuthDigest(tt.serverID, nil, nil), "serverID=%s", tt.serverID)
	}
}

func TestAuthDigest_IncludesSecretAndKey(t *testing.T) {
	base := AuthDigest("", []byte("secret"), []byte("key"))
	assert.NotEqual(t, base, AuthDigest("", []byte("secret2"), []byte("key")))
	assert.NotEqual(t, base, AuthDigest("", []byte("secret"), []byte("key2")))
}
