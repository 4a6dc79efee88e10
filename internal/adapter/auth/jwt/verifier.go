package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/auth"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var errMissingSecret = errors.New("jwtauth: signing secret is empty")

// Verifier checks HMAC-signed tokens issued by the account service.
// The actor id is read from "sub", falling back to "userId".
type Verifier struct {
	secret []byte
	issuer string
}

/**
 * Builds a verifier for HS256/384/512 tokens signed with secret.
 * When issuer is non-empty the "iss" claim must match it.
 */
func NewVerifier(secret, issuer string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errMissingSecret
	}
	return &Verifier{secret: []byte(secret), issuer: issuer}, nil
}

func (v *Verifier) Verify(ctx context.Context, credential string) (*auth.Identity, error) {
	if credential == "" {
		return nil, auth.ErrUnauthorized
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwtlib.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(v.issuer))
	}

	claims := jwtlib.MapClaims{}
	token, err := jwtlib.ParseWithClaims(credential, claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidCredential, err)
	}

	subject := subjectOf(claims)
	if subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", auth.ErrInvalidCredential)
	}
	return &auth.Identity{ActorID: engagement.ActorID(subject)}, nil
}

func subjectOf(claims jwtlib.MapClaims) string {
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub
	}
	if id, ok := claims["userId"].(string); ok {
		return id
	}
	return ""
}

var _ auth.Verifier = (*Verifier)(nil)
