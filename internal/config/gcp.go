package config

import "google.golang.org/api/option"

const (
	envCredentialsFile = "GOOGLE_APPLICATION_CREDENTIALS"
	envFirestoreHost   = "FIRESTORE_EMULATOR_HOST"
)

// GCPConfig locates the Google Cloud project the Firestore adapters use.
// A blank ProjectID means no cloud resources are configured.
type GCPConfig struct {
	ProjectID       string
	CredentialsFile string
	EmulatorHost    string
}

func LoadGCPConfig() GCPConfig {
	return GCPConfig{
		ProjectID:       getenv(envProjectID),
		CredentialsFile: getenv(envCredentialsFile),
		EmulatorHost:    getenv(envFirestoreHost),
	}
}

func (c GCPConfig) Enabled() bool {
	return c.ProjectID != ""
}

// ClientOptions passes the credentials file unless the emulator is in use;
// the emulator rejects real credentials.
func (c GCPConfig) ClientOptions() []option.ClientOption {
	if c.CredentialsFile == "" || c.EmulatorHost != "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(c.CredentialsFile)}
}
