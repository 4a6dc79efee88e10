package auth

import (
	"context"
	"errors"
	"testing"

	portauth "github.com/mansiruhil/fail-u-forward-sub000/internal/port/auth"
)

type stubVerifier struct {
	identity *portauth.Identity
	err      error
	got      string
	calls    int
}

func (s *stubVerifier) Verify(ctx context.Context, credential string) (*portauth.Identity, error) {
	s.calls++
	s.got = credential
	return s.identity, s.err
}

func TestNewGate_RequiresVerifier(t *testing.T) {
	if _, err := NewGate(nil); !errors.Is(err, errMissingVerifier) {
		t.Fatalf("expected errMissingVerifier, got %v", err)
	}
}

func TestGate_Authorize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		header    string
		verifier  *stubVerifier
		wantActor string
		wantErr   error
		wantCalls int
		wantCred  string
	}{
		{
			name:      "valid bearer token",
			header:    "Bearer token-1",
			verifier:  &stubVerifier{identity: &portauth.Identity{ActorID: "alice"}},
			wantActor: "alice",
			wantCalls: 1,
			wantCred:  "token-1",
		},
		{
			name:      "scheme is case-insensitive",
			header:    "bearer token-1",
			verifier:  &stubVerifier{identity: &portauth.Identity{ActorID: "alice"}},
			wantActor: "alice",
			wantCalls: 1,
			wantCred:  "token-1",
		},
		{
			name:     "missing header",
			header:   "",
			verifier: &stubVerifier{},
			wantErr:  portauth.ErrUnauthorized,
		},
		{
			name:     "wrong scheme",
			header:   "Basic dXNlcjpwYXNz",
			verifier: &stubVerifier{},
			wantErr:  portauth.ErrUnauthorized,
		},
		{
			name:     "scheme without token",
			header:   "Bearer   ",
			verifier: &stubVerifier{},
			wantErr:  portauth.ErrUnauthorized,
		},
		{
			name:     "token with spaces",
			header:   "Bearer a b",
			verifier: &stubVerifier{},
			wantErr:  portauth.ErrUnauthorized,
		},
		{
			name:      "verifier rejects",
			header:    "Bearer bad",
			verifier:  &stubVerifier{err: portauth.ErrInvalidCredential},
			wantErr:   portauth.ErrInvalidCredential,
			wantCalls: 1,
			wantCred:  "bad",
		},
		{
			name:      "provider failure fails closed",
			header:    "Bearer token-1",
			verifier:  &stubVerifier{err: errors.New("provider down")},
			wantErr:   portauth.ErrInvalidCredential,
			wantCalls: 1,
			wantCred:  "token-1",
		},
		{
			name:      "empty identity",
			header:    "Bearer token-1",
			verifier:  &stubVerifier{identity: &portauth.Identity{}},
			wantErr:   portauth.ErrInvalidCredential,
			wantCalls: 1,
			wantCred:  "token-1",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gate, err := NewGate(tc.verifier)
			if err != nil {
				t.Fatalf("NewGate returned error: %v", err)
			}
			actor, err := gate.Authorize(context.Background(), tc.header)

			if tc.verifier.calls != tc.wantCalls {
				t.Fatalf("expected %d verifier calls, got %d", tc.wantCalls, tc.verifier.calls)
			}
			if tc.wantCalls > 0 && tc.verifier.got != tc.wantCred {
				t.Fatalf("verifier got credential %q, want %q", tc.verifier.got, tc.wantCred)
			}
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				if actor != "" {
					t.Fatalf("no actor should be returned on failure, got %q", actor)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authorize returned error: %v", err)
			}
			if string(actor) != tc.wantActor {
				t.Fatalf("expected actor %q, got %q", tc.wantActor, actor)
			}
		})
	}
}
