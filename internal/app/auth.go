package app

import (
	"context"
	"fmt"

	firebaseauth "github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/auth/firebase"
	jwtauth "github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/auth/jwt"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"
	portauth "github.com/mansiruhil/fail-u-forward-sub000/internal/port/auth"
)

var (
	firebaseVerifierCtor = firebaseauth.NewVerifier
	verifierFactory      = newVerifier
)

// newVerifier builds the identity provider named by AUTH_PROVIDER.
func newVerifier(ctx context.Context, infra *Infra, cfg *config.AuthConfig) (portauth.Verifier, error) {
	switch cfg.Provider {
	case config.AuthProviderFirebase:
		v, err := firebaseVerifierCtor(ctx, cfg.ProjectID, infra.ClientOptions()...)
		if err != nil {
			return nil, fmt.Errorf("new firebase verifier: %w", err)
		}
		return v, nil
	case config.AuthProviderJWT, "":
		v, err := jwtauth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
		if err != nil {
			return nil, fmt.Errorf("new jwt verifier: %w", err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("auth: unsupported provider %q", cfg.Provider)
	}
}
