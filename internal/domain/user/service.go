package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ecemedico/ece/internal/platform/auth"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidRole        = errors.New("invalid role")
)

var validRoles = map[string]bool{
	auth.RoleMedico:     true,
	auth.RoleEnfermeria: true,
	auth.RoleRecepcion:  true,
	auth.RoleAdmin:      true,
}

type Service struct {
	repo     Repository
	secret   []byte
	tokenTTL time.Duration
}

func NewService(repo Repository, secret []byte, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, secret: secret, tokenTTL: tokenTTL}
}

// Register creates a new staff account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, username, name, password string, roles []string) (*User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("usuario and password are required")
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("at least one role is required")
	}
	for _, role := range roles {
		if !validRoles[role] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
		}
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
		Roles:        roles,
		Active:       true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and issues a signed token. Disabled
// accounts and wrong passwords both come back as ErrInvalidCredentials so
// the response does not leak which part failed.
func (s *Service) Login(ctx context.Context, username, password string) (string, *User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !u.Active {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.IssueToken(s.secret, strconv.FormatInt(u.ID, 10), u.Name, u.Roles, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return u, err
}

// SetActive enables or disables an account. Disabling does not revoke
// already-issued tokens; they age out with their TTL.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	u.Active = active
	return s.repo.Update(ctx, u)
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.repo.List(ctx, limit, offset)
}
