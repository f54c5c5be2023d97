package crypto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
)

var (
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrDecryptFailed    = errors.New("payload decryption failed")
)

// KeyPair holds the server-side RSA key used to receive encrypted
// credential payloads. The public half is published through the
// /api/auth/public_key endpoint; the private half never leaves the process.
type KeyPair struct {
	priv *rsa.PrivateKey
}

// GenerateKeyPair creates a fresh 2048-bit RSA key pair.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("generating rsa key: %w", err)
	}
	return &KeyPair{priv: priv}, nil
}

// PublicKeyPEM returns the public key as a PEM-encoded PKIX block.
func (k *KeyPair) PublicKeyPEM() (string, error) {
	der, err := x509.MarshalPKIXPublicKey(&k.priv.PublicKey)
	if err != nil {
		return "", fmt.Errorf("marshaling public key: %w", err)
	}
	block := &pem.Block{Type: "PUBLIC KEY", Bytes: der}
	return string(pem.EncodeToMemory(block)), nil
}

// DecryptPayload base64-decodes and RSA-OAEP(SHA-256) decrypts a ciphertext
// produced by EncryptPayload, then unmarshals the plaintext JSON into out.
func (k *KeyPair) DecryptPayload(encryptedB64 string, out any) error {
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedB64)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}

	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, k.priv, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}

	if err := json.Unmarshal(plaintext, out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}
	return nil
}

// ParsePublicKeyPEM parses a PEM-encoded PKIX RSA public key as served by
// the public_key endpoint.
func ParsePublicKeyPEM(pemText string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemText))
	if block == nil {
		return nil, ErrInvalidPublicKey
	}

	key, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	pub, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, ErrInvalidPublicKey
	}
	return pub, nil
}

// EncryptPayload marshals the payload to JSON, encrypts it with
// RSA-OAEP(SHA-256) under the given public key, and base64-encodes the
// ciphertext. Payloads larger than the RSA block size fail with an error
// and no partial state.
func EncryptPayload(pub *rsa.PublicKey, payload any) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshaling payload: %w", err)
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
	if err != nil {
		return "", fmt.Errorf("encrypting payload: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
