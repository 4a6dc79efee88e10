package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	portauth "github.com/mansiruhil/fail-u-forward-sub000/internal/port/auth"
)

var errMissingVerifier = errors.New("auth_gate: verifier is nil")

const bearerScheme = "bearer"

/**
 * Authorization gate for mutating requests.
 * verifier: identity provider that checks the bearer credential
 *
 * The gate is stateless. It does no rate limiting or deduplication.
 */
type Gate struct {
	verifier portauth.Verifier
}

func NewGate(verifier portauth.Verifier) (*Gate, error) {
	if verifier == nil {
		return nil, errMissingVerifier
	}
	return &Gate{verifier: verifier}, nil
}

/**
 * Resolves the actor behind an Authorization header value.
 * A missing or malformed header yields ErrUnauthorized. Anything the
 * verifier does not accept yields ErrInvalidCredential.
 */
func (g *Gate) Authorize(ctx context.Context, header string) (engagement.ActorID, error) {
	credential, err := ParseBearer(header)
	if err != nil {
		return "", err
	}

	identity, err := g.verifier.Verify(ctx, credential)
	if err != nil {
		if errors.Is(err, portauth.ErrInvalidCredential) {
			return "", err
		}
		// fail closed on provider outages too
		return "", fmt.Errorf("%w: %v", portauth.ErrInvalidCredential, err)
	}
	if identity == nil || identity.ActorID == "" {
		return "", fmt.Errorf("%w: empty identity", portauth.ErrInvalidCredential)
	}
	return identity.ActorID, nil
}

// ParseBearer extracts the token from "Bearer <token>". The scheme is
// case-insensitive.
func ParseBearer(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", portauth.ErrUnauthorized
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return "", portauth.ErrUnauthorized
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", portauth.ErrUnauthorized
	}
	return token, nil
}
