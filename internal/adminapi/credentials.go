package adminapi

import (
	"context"
	"errors"
)

var ErrNoCredentials = errors.New("no remote api credentials")

// CredentialProvider supplies the bearer token for authenticated calls.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed bearer token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", ErrNoCredentials
	}
	return string(t), nil
}
