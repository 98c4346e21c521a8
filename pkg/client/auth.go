package client

import (
	"fmt"
	"net/http"

	"github.com/gregtusar/exotics/pkg/auth"
)

// Authenticator adds credentials to outgoing requests.
type Authenticator interface {
	AddAuthHeaders(req *http.Request) error
}

// TokenAuthenticator sends a pre-issued bearer token.
type TokenAuthenticator struct {
	token string
}

func NewTokenAuthenticator(token string) *TokenAuthenticator {
	return &TokenAuthenticator{token: token}
}

func (t *TokenAuthenticator) AddAuthHeaders(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return nil
}

// SignerAuthenticator mints a fresh token per request from a shared signing key.
type SignerAuthenticator struct {
	signer  *auth.Signer
	subject string
}

func NewSignerAuthenticator(signer *auth.Signer, subject string) *SignerAuthenticator {
	return &SignerAuthenticator{signer: signer, subject: subject}
}

func (s *SignerAuthenticator) AddAuthHeaders(req *http.Request) error {
	token, err := s.signer.Issue(s.subject)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
