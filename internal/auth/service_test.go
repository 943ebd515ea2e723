package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/debateclub/debate-club-api/internal/model"
)

// --- in-memory fakes ---

type fakeUsers struct {
	byEmail map[string]*model.User
	byID    map[string]*model.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*model.User{}, byID: map[string]*model.User{}}
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	return f.byID[id], nil
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

// fakeSessions enforces the one-session-per-user rule the real table
// carries via its UNIQUE key.
type fakeSessions struct {
	byToken map[string]*model.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byToken: map[string]*model.Session{}}
}

func (f *fakeSessions) Replace(_ context.Context, s *model.Session) error {
	for tok, old := range f.byToken {
		if old.UserID == s.UserID {
			delete(f.byToken, tok)
		}
	}
	f.byToken[s.SessionToken] = s
	return nil
}

func (f *fakeSessions) GetByToken(_ context.Context, token string) (*model.Session, error) {
	return f.byToken[token], nil
}

func (f *fakeSessions) DeleteByToken(_ context.Context, token string) error {
	delete(f.byToken, token)
	return nil
}

type fakeProvider struct {
	exchangeFn func(ctx context.Context, id string) (Identity, error)
}

func (f *fakeProvider) Exchange(ctx context.Context, id string) (Identity, error) {
	if f.exchangeFn != nil {
		return f.exchangeFn(ctx, id)
	}
	return Identity{Email: "alice@example.com", Name: "Alice", SessionToken: "tok-" + id}, nil
}

func newTestService(p IdentityProvider, users *fakeUsers, sessions *fakeSessions) *Service {
	return NewService(p, users, sessions, 7)
}

// --- tests ---

func TestCompleteOAuthLoginProvisionsUser(t *testing.T) {
	users := newFakeUsers()
	sessions := newFakeSessions()
	svc := newTestService(&fakeProvider{}, users, sessions)

	u, sess, err := svc.CompleteOAuthLogin(context.Background(), "ext-1")
	if err != nil {
		t.Fatalf("CompleteOAuthLogin: %v", err)
	}
	if u.Email != "alice@example.com" || u.ID == "" {
		t.Fatalf("unexpected user %+v", u)
	}
	if sess.SessionToken != "tok-ext-1" || sess.UserID != u.ID {
		t.Fatalf("unexpected session %+v", sess)
	}
	if users.byEmail["alice@example.com"] == nil {
		t.Fatal("user not persisted")
	}
}

func TestSecondLoginLeavesOneSession(t *testing.T) {
	users := newFakeUsers()
	sessions := newFakeSessions()
	svc := newTestService(&fakeProvider{}, users, sessions)

	_, first, err := svc.CompleteOAuthLogin(context.Background(), "ext-1")
	if err != nil {
		t.Fatal(err)
	}
	u2, second, err := svc.CompleteOAuthLogin(context.Background(), "ext-2")
	if err != nil {
		t.Fatal(err)
	}

	if len(sessions.byToken) != 1 {
		t.Fatalf("session count = %d, want 1", len(sessions.byToken))
	}
	if sessions.byToken[first.SessionToken] != nil {
		t.Fatal("first session still present after re-login")
	}
	if sessions.byToken[second.SessionToken] == nil {
		t.Fatal("second session missing")
	}

	// The first token must no longer authenticate.
	if _, err := svc.AuthenticateBySession(context.Background(), first.SessionToken, ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("stale token = %v, want ErrUnauthenticated", err)
	}
	got, err := svc.AuthenticateBySession(context.Background(), second.SessionToken, "")
	if err != nil {
		t.Fatalf("fresh token: %v", err)
	}
	if got.ID != u2.ID {
		t.Fatalf("authenticated user %q, want %q", got.ID, u2.ID)
	}
}

func TestAuthenticateBySessionExpired(t *testing.T) {
	users := newFakeUsers()
	sessions := newFakeSessions()
	svc := newTestService(&fakeProvider{}, users, sessions)

	_, sess, err := svc.CompleteOAuthLogin(context.Background(), "ext-1")
	if err != nil {
		t.Fatal(err)
	}

	// Jump the clock past the session lifetime.
	svc.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }
	if _, err := svc.AuthenticateBySession(context.Background(), sess.SessionToken, ""); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expired session = %v, want ErrSessionExpired", err)
	}
}

func TestAuthenticateBySessionUnknownToken(t *testing.T) {
	svc := newTestService(&fakeProvider{}, newFakeUsers(), newFakeSessions())

	if _, err := svc.AuthenticateBySession(context.Background(), "ghost", ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("unknown token = %v, want ErrUnauthenticated", err)
	}
	if _, err := svc.AuthenticateBySession(context.Background(), "", ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("no token = %v, want ErrUnauthenticated", err)
	}
}

func TestAuthenticateBySessionHeaderFallback(t *testing.T) {
	users := newFakeUsers()
	sessions := newFakeSessions()
	svc := newTestService(&fakeProvider{}, users, sessions)

	u, sess, err := svc.CompleteOAuthLogin(context.Background(), "ext-1")
	if err != nil {
		t.Fatal(err)
	}
	got, err := svc.AuthenticateBySession(context.Background(), "", sess.SessionToken)
	if err != nil {
		t.Fatalf("bearer fallback: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("user %q, want %q", got.ID, u.ID)
	}
}

func TestAuthenticateBySessionDanglingUser(t *testing.T) {
	users := newFakeUsers()
	sessions := newFakeSessions()
	svc := newTestService(&fakeProvider{}, users, sessions)

	u, sess, err := svc.CompleteOAuthLogin(context.Background(), "ext-1")
	if err != nil {
		t.Fatal(err)
	}
	delete(users.byID, u.ID)

	if _, err := svc.AuthenticateBySession(context.Background(), sess.SessionToken, ""); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("dangling user = %v, want ErrUserNotFound", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	sessions := newFakeSessions()
	svc := newTestService(&fakeProvider{}, newFakeUsers(), sessions)

	_, sess, err := svc.CompleteOAuthLogin(context.Background(), "ext-1")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := svc.Logout(context.Background(), sess.SessionToken); err != nil {
			t.Fatalf("logout #%d: %v", i+1, err)
		}
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout with empty token: %v", err)
	}
	if len(sessions.byToken) != 0 {
		t.Fatal("session survived logout")
	}
}

func TestCompleteOAuthLoginUpstreamFailure(t *testing.T) {
	p := &fakeProvider{exchangeFn: func(context.Context, string) (Identity, error) {
		return Identity{}, ErrUpstreamAuth
	}}
	svc := newTestService(p, newFakeUsers(), newFakeSessions())

	if _, _, err := svc.CompleteOAuthLogin(context.Background(), "bad"); !errors.Is(err, ErrUpstreamAuth) {
		t.Fatalf("upstream failure = %v, want ErrUpstreamAuth", err)
	}
}
