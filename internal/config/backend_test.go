package config

import "testing"

func TestLoadBackends(t *testing.T) {
	t.Setenv(envPostRepository, "")
	t.Setenv(envJobQueue, "FIRESTORE")

	repo, err := LoadPostRepositoryBackend()
	if err != nil || repo != BackendMemory {
		t.Fatalf("expected memory default, got %s (%v)", repo, err)
	}
	q, err := LoadJobQueueBackend()
	if err != nil || q != BackendFirestore {
		t.Fatalf("expected firestore, got %s (%v)", q, err)
	}

	t.Setenv(envPostRepository, "postgres")
	if _, err := LoadPostRepositoryBackend(); err == nil {
		t.Fatalf("expected error for unsupported backend")
	}
}

func TestLoadAuthConfigFromEnv(t *testing.T) {
	cases := []struct {
		name     string
		env      map[string]string
		wantErr  bool
		provider string
	}{
		{name: "jwt default", env: map[string]string{envJWTSecret: "s"}, provider: AuthProviderJWT},
		{name: "jwt without secret", env: map[string]string{envAuthProvider: "jwt"}, wantErr: true},
		{name: "firebase", env: map[string]string{envAuthProvider: "firebase", envProjectID: "proj"}, provider: AuthProviderFirebase},
		{name: "firebase without project", env: map[string]string{envAuthProvider: "firebase"}, wantErr: true},
		{name: "unknown provider", env: map[string]string{envAuthProvider: "ldap"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, key := range []string{envAuthProvider, envJWTSecret, envJWTIssuer, envProjectID} {
				t.Setenv(key, tc.env[key])
			}
			cfg, err := LoadAuthConfigFromEnv()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Provider != tc.provider {
				t.Fatalf("want provider %s, got %s", tc.provider, cfg.Provider)
			}
		})
	}
}

func TestLoadLogConfigFromEnv(t *testing.T) {
	t.Setenv(envLogLevel, "")
	t.Setenv(envLogFormat, "")
	cfg, err := LoadLogConfigFromEnv()
	if err != nil || cfg.Level != "info" || cfg.Format != LogFormatJSON {
		t.Fatalf("unexpected defaults: %+v (%v)", cfg, err)
	}

	t.Setenv(envLogFormat, "xml")
	if _, err := LoadLogConfigFromEnv(); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
