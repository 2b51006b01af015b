// Package auth checks the static API key the POS backend presents.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
)

const HeaderAPIKey = "X-API-Key"

var (
	ErrMissingKey = errors.New("missing API key")
	ErrInvalidKey = errors.New("invalid API key")
	ErrNoKeySet   = errors.New("no API key configured")
)

// Verifier compares presented keys with the configured one. With no key
// configured every request is rejected.
type Verifier struct {
	key []byte
}

func NewVerifier(key string) *Verifier {
	return &Verifier{key: []byte(key)}
}

// Configured reports whether any key is set.
func (v *Verifier) Configured() bool { return len(v.key) > 0 }

func (v *Verifier) Verify(presented string) error {
	if len(v.key) == 0 {
		return ErrNoKeySet
	}
	if presented == "" {
		return ErrMissingKey
	}
	if subtle.ConstantTimeCompare(v.key, []byte(presented)) != 1 {
		return ErrInvalidKey
	}
	return nil
}

// VerifyRequest reads the key from the X-API-Key header.
func (v *Verifier) VerifyRequest(r *http.Request) error {
	return v.Verify(r.Header.Get(HeaderAPIKey))
}
