package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
	"github.com/hakwonhub/dashboard-gateway/internal/core/ports"
)

type stubSessionStore struct {
	sessions map[string]*domain.Session
	saveErr  error
	loadErr  error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	clone := *sess
	s.sessions[sess.ID] = &clone
	return nil
}

func (s *stubSessionStore) Load(_ context.Context, id string) (*domain.Session, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestDecodeRoleClaim_Valid(t *testing.T) {
	access := signedToken(t, jwt.MapClaims{"role": "owner", "full_name": "X"})

	claims, err := DecodeRoleClaim(access)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Role != "owner" || claims.FullName != "X" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestDecodeRoleClaim_Malformed(t *testing.T) {
	cases := []string{
		"",
		"not-a-token",
		"only.two",
		"a.!!!not-base64url!!!.c",
		"a.bm90LWpzb24.c", // payload decodes but is not JSON
	}
	for _, tok := range cases {
		if _, err := DecodeRoleClaim(tok); err != domain.ErrMalformedToken {
			t.Fatalf("token %q: expected ErrMalformedToken, got %v", tok, err)
		}
	}
}

func TestEstablish_Success(t *testing.T) {
	store := newStubSessionStore()
	svc := NewSessionService(store, zerolog.Nop())

	access := signedToken(t, jwt.MapClaims{"role": "teacher", "full_name": "Kim Minji"})
	sess, err := svc.Establish(context.Background(), domain.TokenPair{Access: access, Refresh: "r"}, "teacher")
	if err != nil {
		t.Fatalf("Establish returned error: %v", err)
	}
	if sess.Role != domain.RoleTeacher {
		t.Fatalf("unexpected role: %s", sess.Role)
	}
	if sess.FullName != "Kim Minji" {
		t.Fatalf("full name not decoded: %q", sess.FullName)
	}
	if sess.RefreshToken != "r" {
		t.Fatalf("refresh token not stored")
	}
	if stored := svc.Current(context.Background(), sess.ID); stored == nil || stored.Role != domain.RoleTeacher {
		t.Fatalf("session not persisted: %+v", stored)
	}
}

func TestEstablish_InvalidRole(t *testing.T) {
	store := newStubSessionStore()
	svc := NewSessionService(store, zerolog.Nop())

	access := signedToken(t, jwt.MapClaims{"role": "superadmin"})
	if _, err := svc.Establish(context.Background(), domain.TokenPair{Access: access}, "superadmin"); err != domain.ErrInvalidRoleClaim {
		t.Fatalf("expected ErrInvalidRoleClaim, got %v", err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("no session should be written on a bad role")
	}
}

func TestEstablish_MissingAccessToken(t *testing.T) {
	store := newStubSessionStore()
	svc := NewSessionService(store, zerolog.Nop())

	if _, err := svc.Establish(context.Background(), domain.TokenPair{Refresh: "r"}, "owner"); err != domain.ErrMalformedToken {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("no session should be written without an access token")
	}
}

func TestCurrent_NoSession(t *testing.T) {
	svc := NewSessionService(newStubSessionStore(), zerolog.Nop())

	if sess := svc.Current(context.Background(), ""); sess != nil {
		t.Fatalf("expected nil for empty id, got %+v", sess)
	}
	if sess := svc.Current(context.Background(), "ghost"); sess != nil {
		t.Fatalf("expected nil for unknown id, got %+v", sess)
	}
}

func TestCurrent_StoreFailureReadsAsLoggedOut(t *testing.T) {
	store := newStubSessionStore()
	store.loadErr = context.DeadlineExceeded
	svc := NewSessionService(store, zerolog.Nop())

	if sess := svc.Current(context.Background(), "any"); sess != nil {
		t.Fatalf("store failure must read as logged out, got %+v", sess)
	}
}

func TestAuthorize_Matrix(t *testing.T) {
	store := newStubSessionStore()
	svc := NewSessionService(store, zerolog.Nop())

	access := signedToken(t, jwt.MapClaims{"role": "teacher"})
	sess, err := svc.Establish(context.Background(), domain.TokenPair{Access: access}, "teacher")
	if err != nil {
		t.Fatalf("Establish failed: %v", err)
	}

	for _, required := range domain.Roles() {
		got := svc.Authorize(context.Background(), sess.ID, required)
		want := ports.DecisionRedirectToLogin
		if required == domain.RoleTeacher {
			want = ports.DecisionAllow
		}
		if got != want {
			t.Fatalf("authorize(%s): expected %v, got %v", required, want, got)
		}
	}

	// No session at all: every role is redirected.
	for _, required := range domain.Roles() {
		if svc.Authorize(context.Background(), "missing", required) != ports.DecisionRedirectToLogin {
			t.Fatalf("authorize(%s) without session must redirect", required)
		}
	}
}

func TestAuthorize_MismatchDoesNotTeardown(t *testing.T) {
	store := newStubSessionStore()
	svc := NewSessionService(store, zerolog.Nop())

	access := signedToken(t, jwt.MapClaims{"role": "teacher"})
	sess, _ := svc.Establish(context.Background(), domain.TokenPair{Access: access}, "teacher")

	if svc.Authorize(context.Background(), sess.ID, domain.RoleOwner) != ports.DecisionRedirectToLogin {
		t.Fatalf("expected redirect for wrong role")
	}
	if svc.Current(context.Background(), sess.ID) == nil {
		t.Fatalf("role mismatch must not destroy the session")
	}
}

func TestTeardown_Idempotent(t *testing.T) {
	store := newStubSessionStore()
	svc := NewSessionService(store, zerolog.Nop())

	access := signedToken(t, jwt.MapClaims{"role": "parent"})
	sess, _ := svc.Establish(context.Background(), domain.TokenPair{Access: access}, "parent")

	if err := svc.Teardown(context.Background(), sess.ID); err != nil {
		t.Fatalf("teardown failed: %v", err)
	}
	if svc.Current(context.Background(), sess.ID) != nil {
		t.Fatalf("session should be gone after teardown")
	}
	if err := svc.Teardown(context.Background(), sess.ID); err != nil {
		t.Fatalf("second teardown must be a no-op, got %v", err)
	}
	if err := svc.Teardown(context.Background(), ""); err != nil {
		t.Fatalf("teardown without a session must be a no-op, got %v", err)
	}
}
