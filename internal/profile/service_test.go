package profile

import (
	"context"
	"errors"
	"testing"
)

type stubRepo struct {
	byEmail  map[string]*Profile
	sessions map[string]*Session
}

func newStubRepo() *stubRepo {
	return &stubRepo{byEmail: map[string]*Profile{}, sessions: map[string]*Session{}}
}

func (s *stubRepo) Create(ctx context.Context, p *Profile) error {
	if _, ok := s.byEmail[p.Email]; ok {
		return ErrAlreadyExist
	}
	s.byEmail[p.Email] = p
	return nil
}

func (s *stubRepo) GetByID(ctx context.Context, id string) (*Profile, error) {
	for _, p := range s.byEmail {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *stubRepo) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	if p, ok := s.byEmail[email]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

func (s *stubRepo) CreateSession(ctx context.Context, sess *Session) error {
	s.sessions[sess.Token] = sess
	return nil
}

func (s *stubRepo) GetBySessionToken(ctx context.Context, token string) (*Profile, error) {
	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrNoSession
	}
	return s.GetByID(ctx, sess.ProfileID)
}

func TestLogin_RoundTrip(t *testing.T) {
	repo := newStubRepo()
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo.byEmail["owner@cafe.local"] = &Profile{ID: "p1", Email: "owner@cafe.local", Role: RoleOwner, PasswordHash: hash}

	svc := NewService(repo)
	resp, err := svc.Login(context.Background(), "owner@cafe.local", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("empty session token")
	}
	if resp.Profile.PasswordHash != hash {
		t.Fatal("profile not returned")
	}

	p, err := svc.Authenticate(context.Background(), resp.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if p.ID != "p1" {
		t.Fatalf("resolved wrong profile %s", p.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubRepo()
	hash, _ := HashPassword("s3cret")
	repo.byEmail["owner@cafe.local"] = &Profile{ID: "p1", Email: "owner@cafe.local", PasswordHash: hash}

	svc := NewService(repo)
	if _, err := svc.Login(context.Background(), "owner@cafe.local", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err=%v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(context.Background(), "ghost@cafe.local", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email err=%v, want ErrInvalidCredentials", err)
	}
	if len(repo.sessions) != 0 {
		t.Fatal("failed login must not mint a session")
	}
}

func TestElevated(t *testing.T) {
	for role, want := range map[string]bool{
		RoleCustomer: false, RoleAdmin: true, RoleOwner: true, RoleSuperUser: true, "": false,
	} {
		if got := Elevated(role); got != want {
			t.Errorf("Elevated(%q)=%v, want %v", role, got, want)
		}
	}
}
