package app

import (
	"errors"
	"fmt"

	repoFirestore "github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/repository/firestore"
	repoMemory "github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/repository/memory"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/config"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"
)

var postRepositoryFactory = newPostRepository

var errFirestoreRepoRequiresClient = errors.New("post repository: firestore client is not initialized")

// newPostRepository returns the memory or Firestore repository for backend.
func newPostRepository(infra *Infra, backend string) (repository.PostRepository, error) {
	switch backend {
	case config.BackendFirestore:
		if infra.Firestore() == nil {
			return nil, errFirestoreRepoRequiresClient
		}
		repo, err := repoFirestore.NewPostRepository(infra.Firestore())
		if err != nil {
			return nil, fmt.Errorf("new firestore post repository: %w", err)
		}
		return repo, nil
	case config.BackendMemory, "":
		return repoMemory.NewInMemoryPostRepository(), nil
	default:
		return nil, fmt.Errorf("post repository: unsupported backend %q", backend)
	}
}
