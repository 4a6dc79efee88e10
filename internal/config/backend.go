package config

import (
	"fmt"
	"strings"
)

const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"

	AuthProviderJWT      = "jwt"
	AuthProviderFirebase = "firebase"

	envPostRepository = "POST_REPOSITORY"
	envJobQueue       = "JOB_QUEUE_BACKEND"
	envAuthProvider   = "AUTH_PROVIDER"
	envJWTSecret      = "JWT_SECRET"
	envJWTIssuer      = "JWT_ISSUER"
	envProjectID      = "GOOGLE_CLOUD_PROJECT"
)

// LoadPostRepositoryBackend returns "memory" (default) or "firestore".
func LoadPostRepositoryBackend() (string, error) {
	return loadBackend(envPostRepository)
}

// LoadJobQueueBackend returns "memory" (default) or "firestore".
func LoadJobQueueBackend() (string, error) {
	return loadBackend(envJobQueue)
}

func loadBackend(key string) (string, error) {
	switch v := getenvLower(key); v {
	case "", BackendMemory:
		return BackendMemory, nil
	case BackendFirestore:
		return v, nil
	default:
		return "", fmt.Errorf("config: unsupported %s %q", key, v)
	}
}

// AuthConfig selects and configures the identity provider.
type AuthConfig struct {
	Provider  string
	JWTSecret string
	JWTIssuer string
	ProjectID string
}

/**
 * AUTH_PROVIDER=jwt (default) requires JWT_SECRET.
 * AUTH_PROVIDER=firebase requires GOOGLE_CLOUD_PROJECT.
 */
func LoadAuthConfigFromEnv() (*AuthConfig, error) {
	cfg := &AuthConfig{
		Provider:  getenvLower(envAuthProvider),
		JWTSecret: getenv(envJWTSecret),
		JWTIssuer: getenv(envJWTIssuer),
		ProjectID: getenv(envProjectID),
	}
	if cfg.Provider == "" {
		cfg.Provider = AuthProviderJWT
	}

	switch cfg.Provider {
	case AuthProviderJWT:
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("config: %s is not set", envJWTSecret)
		}
	case AuthProviderFirebase:
		if cfg.ProjectID == "" {
			return nil, fmt.Errorf("config: %s is required for %s=%s", envProjectID, envAuthProvider, AuthProviderFirebase)
		}
	default:
		return nil, fmt.Errorf("config: unsupported %s %q (want %s)", envAuthProvider, cfg.Provider,
			strings.Join([]string{AuthProviderJWT, AuthProviderFirebase}, " or "))
	}
	return cfg, nil
}
