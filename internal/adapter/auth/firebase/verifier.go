package firebase

import (
	"context"
	"errors"
	"fmt"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/auth"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

var errMissingProject = errors.New("firebaseauth: project id is empty")

// tokenVerifier is the part of the Firebase Auth client we use.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// Verifier checks Firebase ID tokens. The token's UID is the actor id.
type Verifier struct {
	client tokenVerifier
}

/**
 * Initialises a Firebase app for projectID and returns a verifier backed
 * by its Auth client. opts are passed through (credentials file, emulator).
 */
func NewVerifier(ctx context.Context, projectID string, opts ...option.ClientOption) (*Verifier, error) {
	if projectID == "" {
		return nil, errMissingProject
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firebase auth client: %w", err)
	}
	return &Verifier{client: client}, nil
}

func (v *Verifier) Verify(ctx context.Context, credential string) (*auth.Identity, error) {
	if credential == "" {
		return nil, auth.ErrUnauthorized
	}
	token, err := v.client.VerifyIDToken(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidCredential, err)
	}
	if token == nil || token.UID == "" {
		return nil, fmt.Errorf("%w: token has no uid", auth.ErrInvalidCredential)
	}
	return &auth.Identity{ActorID: engagement.ActorID(token.UID)}, nil
}

var _ auth.Verifier = (*Verifier)(nil)
