package practitioner

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("practitioner not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePractitioner(ctx context.Context, p *Practitioner) error {
	if p.Name == "" {
		return fmt.Errorf("nombre is required")
	}
	if p.Code == "" {
		return fmt.Errorf("codigo is required")
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) GetPractitioner(ctx context.Context, id int64) (*Practitioner, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *Service) UpdatePractitioner(ctx context.Context, p *Practitioner) error {
	if _, err := s.GetPractitioner(ctx, p.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) DeletePractitioner(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPractitioners(ctx context.Context, limit, offset int) ([]*Practitioner, int, error) {
	return s.repo.List(ctx, limit, offset)
}
