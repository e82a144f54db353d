package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
)

// RSAKeyPair holds the server's RSA-1024 key pair and the DER-encoded
// public key sent to clients in the encryption request.
type RSAKeyPair struct {
	PrivateKey   *rsa.PrivateKey
	PublicKeyDER []byte
}

// GenerateRSAKeyPair generates an RSA-1024 key pair and pre-computes the
// SubjectPublicKeyInfo encoding. 1024 bits matches the vanilla server;
// the key only protects a per-connection AES secret in transit.
func GenerateRSAKeyPair() (*RSAKeyPair, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		return nil, fmt.Errorf("generating RSA key: %w", err)
	}

	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("encoding public key: %w", err)
	}

	return &RSAKeyPair{
		PrivateKey:   privateKey,
		PublicKeyDER: der,
	}, nil
}

// Decrypt decrypts a PKCS#1 v1.5 ciphertext (shared secret or verify
// token) with the server's private key.
func (kp *RSAKeyPair) Decrypt(ciphertext []byte) ([]byte, error) {
	plain, err := rsa.DecryptPKCS1v15(rand.Reader, kp.PrivateKey, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("rsa decrypt: %w", err)
	}
	return plain, nil
}

// VerifyToken generates a fresh 4-byte verify token for one login exchange.
func VerifyToken() ([]byte, error) {
	token := make([]byte, 4)
	if _, err := rand.Read(token); err != nil {
		return nil, fmt.Errorf("generating verify token: %w", err)
	}
	return token, nil
}
