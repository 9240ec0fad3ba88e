package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/albumforge/albumforge-api/internal/domain/user"
	"github.com/albumforge/albumforge-api/internal/pkg/jwt"
	"github.com/albumforge/albumforge-api/internal/pkg/password"
)

type fakeUserRepo struct {
	created    *user.User
	byUsername *user.User
	byID       *user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.created = u
	f.byID = u
	f.byUsername = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.byID != nil && f.byID.ID == id {
		return f.byID, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if f.byUsername != nil && f.byUsername.Username == username {
		return f.byUsername, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

// conflictOnCreateUserRepo simulates losing the unique-index insert race:
// the existence check sees nothing, the insert reports a duplicate.
type conflictOnCreateUserRepo struct{ fakeUserRepo }

func (f *conflictOnCreateUserRepo) Create(ctx context.Context, u *user.User) error {
	return user.ErrUsernameTaken
}

func newTestService(repo user.Repository) *Service {
	return NewService(repo, jwt.NewService("secret", time.Hour))
}

func TestRegisterSuccess(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), &RegisterRequest{Username: "alice", Password: "password123"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp == nil || resp.Token == "" {
		t.Fatal("expected auth response with token")
	}
	if repo.created == nil {
		t.Fatal("expected user to be created")
	}
	if repo.created.PasswordHash == "password123" {
		t.Fatal("expected password to be hashed")
	}
	if !password.Verify("password123", repo.created.PasswordHash) {
		t.Fatal("expected stored hash to verify against the password")
	}
	if resp.User.Username != "alice" {
		t.Fatalf("unexpected username %q", resp.User.Username)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	existing := &user.User{ID: uuid.New(), Username: "alice", PasswordHash: "x", CreatedAt: time.Now()}
	repo := &fakeUserRepo{byUsername: existing, byID: existing}
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), &RegisterRequest{Username: "alice", Password: "password123"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterMapsInsertConflictToDomainError(t *testing.T) {
	repo := &conflictOnCreateUserRepo{}
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), &RegisterRequest{Username: "alice", Password: "password123"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken on insert race, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, _ := password.Hash("password123")
	u := &user.User{ID: uuid.New(), Username: "bob", PasswordHash: hash, CreatedAt: time.Now()}
	repo := &fakeUserRepo{byUsername: u, byID: u}
	svc := newTestService(repo)

	resp, err := svc.Login(context.Background(), &LoginRequest{Username: "bob", Password: "password123"})
	if err != nil {
		t.Fatalf("expected login success, got %v", err)
	}
	if resp == nil || resp.Token == "" {
		t.Fatal("expected token on login")
	}
	if resp.ExpiresIn <= 0 {
		t.Fatalf("expected positive expiresIn, got %d", resp.ExpiresIn)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	hash, _ := password.Hash("password123")
	u := &user.User{ID: uuid.New(), Username: "bob", PasswordHash: hash, CreatedAt: time.Now()}
	repo := &fakeUserRepo{byUsername: u, byID: u}
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), &LoginRequest{Username: "bob", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), &LoginRequest{Username: "ghost", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLoginIssuesAdminRoleClaim(t *testing.T) {
	hash, _ := password.Hash("password123")
	u := &user.User{ID: uuid.New(), Username: "root", PasswordHash: hash, IsAdmin: true, CreatedAt: time.Now()}
	repo := &fakeUserRepo{byUsername: u, byID: u}
	jwtService := jwt.NewService("secret", time.Hour)
	svc := NewService(repo, jwtService)

	resp, err := svc.Login(context.Background(), &LoginRequest{Username: "root", Password: "password123"})
	if err != nil {
		t.Fatalf("login err: %v", err)
	}

	claims, err := jwtService.ValidateAccessToken(resp.Token)
	if err != nil {
		t.Fatalf("validate err: %v", err)
	}
	if claims.Role != jwt.RoleAdmin {
		t.Fatalf("expected admin role claim, got %q", claims.Role)
	}
}
