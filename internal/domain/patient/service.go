package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound                = errors.New("patient not found")
	ErrDuplicateIdentification = errors.New("a patient with this identification already exists")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.Identification == "" {
		return fmt.Errorf("identificacion is required")
	}
	if p.GivenName == "" || p.FamilyName == "" {
		return fmt.Errorf("nombre and apellidos are required")
	}
	if p.Gender == "" {
		p.Gender = GeneroOtro
	}

	if _, err := s.repo.GetByIdentification(ctx, p.Identification); err == nil {
		return ErrDuplicateIdentification
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	return s.repo.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// FindIDByIdentification resolves a business identification to an internal
// patient id. Not finding one is a normal outcome, reported through the
// second return value rather than an error.
func (s *Service) FindIDByIdentification(ctx context.Context, identification string) (int64, bool, error) {
	p, err := s.repo.GetByIdentification(ctx, identification)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return p.ID, true, nil
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	existing, err := s.GetPatient(ctx, p.ID)
	if err != nil {
		return err
	}
	if p.Identification != existing.Identification {
		if _, err := s.repo.GetByIdentification(ctx, p.Identification); err == nil {
			return ErrDuplicateIdentification
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) SearchPatients(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error) {
	if term == "" {
		return s.repo.List(ctx, limit, offset)
	}
	return s.repo.Search(ctx, term, limit, offset)
}

// ImportFHIR parses an inbound FHIR Patient resource and persists it as a
// new clinic record. The identification is the only field the import cannot
// do without.
func (s *Service) ImportFHIR(ctx context.Context, resource map[string]interface{}) (*Patient, error) {
	parsed := ParseFHIR(resource)
	if parsed.Identification == "" {
		return nil, fmt.Errorf("fhir patient carries no identifier")
	}
	rec := parsed.Record()
	if err := s.CreatePatient(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
