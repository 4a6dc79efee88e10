package app

import (
	"context"
	"fmt"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// Infra owns the process-wide cloud connections. The zero value is valid
// and means everything runs in memory.
type Infra struct {
	firestoreClient *firestore.Client
	clientOptions   []option.ClientOption
}

var firestoreClientFactory = func(ctx context.Context, projectID string, opts ...option.ClientOption) (*firestore.Client, error) {
	return firestore.NewClient(ctx, projectID, opts...)
}

// NewInfra opens a Firestore client when GOOGLE_CLOUD_PROJECT is set.
func NewInfra(ctx context.Context) (*Infra, error) {
	gcp := config.LoadGCPConfig()
	if !gcp.Enabled() {
		return &Infra{}, nil
	}

	opts := gcp.ClientOptions()
	client, err := firestoreClientFactory(ctx, gcp.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("open firestore for %s: %w", gcp.ProjectID, err)
	}
	log.Info().
		Str("projectID", gcp.ProjectID).
		Bool("emulator", gcp.EmulatorHost != "").
		Msg("firestore connected")
	return &Infra{firestoreClient: client, clientOptions: opts}, nil
}

func (i *Infra) Firestore() *firestore.Client {
	if i == nil {
		return nil
	}
	return i.firestoreClient
}

// ClientOptions are reused by other Google clients such as Firebase Auth.
func (i *Infra) ClientOptions() []option.ClientOption {
	if i == nil {
		return nil
	}
	return i.clientOptions
}

func (i *Infra) Close() error {
	if i.Firestore() == nil {
		return nil
	}
	return i.firestoreClient.Close()
}
