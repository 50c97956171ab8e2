package prescription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ecemedico/ece/internal/domain/patient"
	"github.com/ecemedico/ece/internal/domain/practitioner"
	"github.com/ecemedico/ece/internal/platform/fhir"
)

var (
	ErrNotFound          = errors.New("prescription not found")
	ErrPatientUnresolved = errors.New("bundle patient could not be resolved")
)

// PatientStore is the slice of the patient service this domain needs; it
// also satisfies PatientLookup for imports.
type PatientStore interface {
	GetPatient(ctx context.Context, id int64) (*patient.Patient, error)
	FindIDByIdentification(ctx context.Context, identification string) (int64, bool, error)
}

type PractitionerStore interface {
	GetPractitioner(ctx context.Context, id int64) (*practitioner.Practitioner, error)
}

type Service struct {
	repo          Repository
	patients      PatientStore
	practitioners PractitionerStore
}

func NewService(repo Repository, patients PatientStore, practitioners PractitionerStore) *Service {
	return &Service{repo: repo, patients: patients, practitioners: practitioners}
}

func (s *Service) CreatePrescription(ctx context.Context, p *Prescription) error {
	if p.PatientID == 0 {
		return fmt.Errorf("paciente_id is required")
	}
	if p.Drugs[0] == nil || p.Drugs[0].Name == "" {
		return fmt.Errorf("medicamento1_nombre is required")
	}
	if _, err := s.patients.GetPatient(ctx, p.PatientID); err != nil {
		return fmt.Errorf("paciente %d: %w", p.PatientID, err)
	}
	if p.PractitionerID != nil {
		if _, err := s.practitioners.GetPractitioner(ctx, *p.PractitionerID); err != nil {
			return fmt.Errorf("medico %d: %w", *p.PractitionerID, err)
		}
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) GetPrescription(ctx context.Context, id int64) (*Prescription, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

// Cancel flips the prescription to inactive; exported MedicationRequests
// switch to status "cancelled".
func (s *Service) Cancel(ctx context.Context, id int64) error {
	p, err := s.GetPrescription(ctx, id)
	if err != nil {
		return err
	}
	p.Active = false
	return s.repo.Update(ctx, p)
}

func (s *Service) DeletePrescription(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListPrescriptions(ctx context.Context, limit, offset int) ([]*Prescription, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Prescription, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// ExportBundle builds the FHIR bundle for one prescription.
func (s *Service) ExportBundle(ctx context.Context, id int64) (*fhir.Bundle, error) {
	p, err := s.GetPrescription(ctx, id)
	if err != nil {
		return nil, err
	}
	pat, err := s.patients.GetPatient(ctx, p.PatientID)
	if err != nil {
		return nil, fmt.Errorf("paciente %d: %w", p.PatientID, err)
	}
	var pract *practitioner.Practitioner
	if p.PractitionerID != nil {
		pract, err = s.practitioners.GetPractitioner(ctx, *p.PractitionerID)
		if err != nil {
			return nil, fmt.Errorf("medico %d: %w", *p.PractitionerID, err)
		}
	}
	return Bundle(p, pat, pract), nil
}

// ImportBundle parses an inbound prescription bundle and persists it. The
// import is refused when no medications are present (ErrNoMedications) or
// when the bundle's patient does not resolve to a known clinic patient
// (ErrPatientUnresolved).
func (s *Service) ImportBundle(ctx context.Context, bundle map[string]interface{}) (*Prescription, error) {
	parsed, err := ParseBundle(ctx, bundle, s.patients)
	if err != nil {
		return nil, err
	}
	if parsed.PatientID == nil {
		return nil, ErrPatientUnresolved
	}
	rec := parsed.Record()
	if err := s.CreatePrescription(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
