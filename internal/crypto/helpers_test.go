package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
)

// encryptPKCS1v15 performs the client side of the encryption handshake.
func encryptPKCS1v15(t *testing.T, kp *RSAKeyPair, plain []byte) ([]byte, error) {
	t.Helper()
	return rsa.EncryptPKCS1v15(rand.Reader, &kp.PrivateKey.PublicKey, plain)
}
