package client

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"

	"github.com/perfpulse/perfpulse-go/internal/crypto"
)

// FetchPublicKey retrieves the server's RSA public key used for
// credential encryption.
func (c *Client) FetchPublicKey(ctx context.Context) (*rsa.PublicKey, error) {
	var resp struct {
		Data struct {
			PublicKey string `json:"public_key"`
		} `json:"data"`
		Success bool `json:"success"`
	}
	if err := c.Request(ctx, http.MethodPost, "/api/auth/public_key", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch public key: %w", err)
	}
	if !resp.Success || resp.Data.PublicKey == "" {
		return nil, fmt.Errorf("fetch public key: server returned no key")
	}
	return crypto.ParsePublicKeyPEM(resp.Data.PublicKey)
}

// EncryptCredentials encrypts a credential payload with the server's
// public key, producing the base64 ciphertext the login and register
// routes accept in their "encrypted" field.
func EncryptCredentials(pub *rsa.PublicKey, email, password, name string) (string, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	if name != "" {
		payload["name"] = name
	}
	return crypto.EncryptPayload(pub, payload)
}
