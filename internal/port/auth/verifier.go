package auth

import (
	"context"
	"errors"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
)

var (
	// ErrUnauthorized means no credential was presented, or it was malformed.
	ErrUnauthorized = errors.New("auth: missing or malformed credential")
	// ErrInvalidCredential means the identity provider rejected the credential.
	ErrInvalidCredential = errors.New("auth: invalid credential")
)

// Identity is what the identity provider vouches for.
type Identity struct {
	ActorID engagement.ActorID
}

/**
 * Identity provider contract
 * Verify: checks a bearer credential and returns the actor behind it.
 *   Rejections are reported as ErrInvalidCredential.
 */
type Verifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}
