package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecemedico/ece/internal/platform/auth"
)

type mockRepo struct {
	byID       map[int64]*User
	byUsername map[string]*User
	nextID     int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		byID:       make(map[int64]*User),
		byUsername: make(map[string]*User),
		nextID:     1,
	}
}

func (m *mockRepo) Create(_ context.Context, u *User) error {
	u.ID = m.nextID
	m.nextID++
	u.CreatedAt = time.Now()
	m.byID[u.ID] = u
	m.byUsername[u.Username] = u
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	u, ok := m.byUsername[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockRepo) Update(_ context.Context, u *User) error {
	m.byID[u.ID] = u
	m.byUsername[u.Username] = u
	return nil
}

func (m *mockRepo) List(_ context.Context, _, _ int) ([]*User, int, error) {
	return nil, 0, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, []byte("test-secret"), time.Hour), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "aruiz", "Dra. Ana Ruiz", "s3creta", []string{auth.RoleMedico})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.PasswordHash == "s3creta" || u.PasswordHash == "" {
		t.Error("password stored without hashing")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3creta")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if !u.Active {
		t.Error("new account should start active")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "x", "pw", []string{auth.RoleMedico}); err == nil {
		t.Error("empty username accepted")
	}
	if _, err := svc.Register(ctx, "u", "x", "", []string{auth.RoleMedico}); err == nil {
		t.Error("empty password accepted")
	}
	if _, err := svc.Register(ctx, "u", "x", "pw", nil); err == nil {
		t.Error("empty roles accepted")
	}
	if _, err := svc.Register(ctx, "u", "x", "pw", []string{"superuser"}); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("err = %v, want ErrInvalidRole", err)
	}

	if _, err := svc.Register(ctx, "aruiz", "x", "pw", []string{auth.RoleMedico}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, "aruiz", "y", "pw2", []string{auth.RoleAdmin}); !errors.Is(err, ErrDuplicateUsername) {
		t.Errorf("err = %v, want ErrDuplicateUsername", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "aruiz", "Dra. Ana Ruiz", "s3creta", []string{auth.RoleMedico}); err != nil {
		t.Fatal(err)
	}

	token, u, err := svc.Login(ctx, "aruiz", "s3creta")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || u.Username != "aruiz" {
		t.Errorf("token = %q, user = %+v", token, u)
	}

	if _, _, err := svc.Login(ctx, "aruiz", "otra"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, _, err := svc.Login(ctx, "nadie", "s3creta"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: err = %v", err)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "aruiz", "Dra. Ana Ruiz", "s3creta", []string{auth.RoleMedico})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.SetActive(ctx, u.ID, false); err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.Login(ctx, "aruiz", "s3creta"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("disabled account: err = %v, want ErrInvalidCredentials", err)
	}
}
