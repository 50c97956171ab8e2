package visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ecemedico/ece/internal/domain/patient"
	"github.com/ecemedico/ece/internal/platform/fhir"
)

var ErrNotFound = errors.New("visit not found")

// PatientStore is the slice of the patient service the visit domain needs.
type PatientStore interface {
	GetPatient(ctx context.Context, id int64) (*patient.Patient, error)
}

type Service struct {
	repo     Repository
	patients PatientStore
}

func NewService(repo Repository, patients PatientStore) *Service {
	return &Service{repo: repo, patients: patients}
}

func (s *Service) CreateVisit(ctx context.Context, v *Visit) error {
	if v.PatientID == 0 {
		return fmt.Errorf("paciente_id is required")
	}
	if _, err := s.patients.GetPatient(ctx, v.PatientID); err != nil {
		return fmt.Errorf("paciente %d: %w", v.PatientID, err)
	}
	if v.Date.IsZero() {
		v.Date = time.Now().UTC()
	}
	return s.repo.Create(ctx, v)
}

func (s *Service) GetVisit(ctx context.Context, id int64) (*Visit, error) {
	v, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

func (s *Service) UpdateVisit(ctx context.Context, v *Visit) error {
	existing, err := s.GetVisit(ctx, v.ID)
	if err != nil {
		return err
	}
	v.PatientID = existing.PatientID
	if v.Date.IsZero() {
		v.Date = existing.Date
	}
	return s.repo.Update(ctx, v)
}

func (s *Service) DeleteVisit(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListVisits(ctx context.Context, limit, offset int) ([]*Visit, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListVisitsByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Visit, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// ExportEncounterBundle builds the collection Bundle for one visit.
func (s *Service) ExportEncounterBundle(ctx context.Context, visitID int64) (*fhir.Bundle, error) {
	v, err := s.GetVisit(ctx, visitID)
	if err != nil {
		return nil, err
	}
	p, err := s.patients.GetPatient(ctx, v.PatientID)
	if err != nil {
		return nil, fmt.Errorf("paciente %d: %w", v.PatientID, err)
	}
	return EncounterBundle(v, p), nil
}

// ExportPatientBundle builds the patient-wide Bundle: the Patient resource
// plus every Encounter, newest first.
func (s *Service) ExportPatientBundle(ctx context.Context, patientID int64) (*fhir.Bundle, error) {
	p, err := s.patients.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	visits, err := s.repo.AllByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return PatientBundle(p, visits), nil
}
