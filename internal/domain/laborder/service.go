package laborder

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
	ErrNotFound          = errors.New("lab order not found")
	ErrPatientUnresolved = errors.New("bundle patient could not be resolved")
	ErrInvalidStatus     = errors.New("invalid lab order status")
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

var validStatus = map[string]bool{
	StatusPending:    true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

func (s *Service) CreateOrder(ctx context.Context, o *LabOrder) error {
	if o.PatientID == 0 {
		return fmt.Errorf("paciente_id is required")
	}
	if o.Exams[0] == nil || o.Exams[0].Name == "" {
		return fmt.Errorf("examen1_nombre is required")
	}
	if _, err := s.patients.GetPatient(ctx, o.PatientID); err != nil {
		return fmt.Errorf("paciente %d: %w", o.PatientID, err)
	}
	if o.PractitionerID != nil {
		if _, err := s.practitioners.GetPractitioner(ctx, *o.PractitionerID); err != nil {
			return fmt.Errorf("medico %d: %w", *o.PractitionerID, err)
		}
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if !validStatus[o.Status] {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, o.Status)
	}
	if o.Date.IsZero() {
		o.Date = time.Now().UTC()
	}
	return s.repo.Create(ctx, o)
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*LabOrder, error) {
	o, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

// UpdateStatus moves the order through its lifecycle. The conversion layer
// only reads the status; transitions are driven here by the CRUD surface.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*LabOrder, error) {
	if !validStatus[status] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Status = status
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// RecordResults writes result values into the order's populated slots and
// marks the order completed when every populated slot has one.
func (s *Service) RecordResults(ctx context.Context, id int64, results map[int]string) (*LabOrder, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	for slot, value := range results {
		if slot < 1 || slot > MaxExams || o.Exams[slot-1] == nil {
			return nil, fmt.Errorf("slot %d has no exam", slot)
		}
		o.Exams[slot-1].Result = value
	}

	complete := true
	for _, pe := range o.PopulatedExams() {
		if pe.Exam.Result == "" {
			complete = false
			break
		}
	}
	if complete {
		o.Status = StatusCompleted
	} else if o.Status == StatusPending {
		o.Status = StatusInProgress
	}

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context, limit, offset int) ([]*LabOrder, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*LabOrder, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

// ExportBundle builds the FHIR bundle for one lab order.
func (s *Service) ExportBundle(ctx context.Context, id int64) (*fhir.Bundle, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	pat, err := s.patients.GetPatient(ctx, o.PatientID)
	if err != nil {
		return nil, fmt.Errorf("paciente %d: %w", o.PatientID, err)
	}
	var pract *practitioner.Practitioner
	if o.PractitionerID != nil {
		pract, err = s.practitioners.GetPractitioner(ctx, *o.PractitionerID)
		if err != nil {
			return nil, fmt.Errorf("medico %d: %w", *o.PractitionerID, err)
		}
	}
	return Bundle(o, pat, pract), nil
}

// ImportBundle parses an inbound lab-order bundle and persists it. The
// import is refused when no exams are present (ErrNoExams) or when the
// bundle's patient does not resolve to a known clinic patient
// (ErrPatientUnresolved).
func (s *Service) ImportBundle(ctx context.Context, bundle map[string]interface{}) (*LabOrder, error) {
	parsed, err := ParseBundle(ctx, bundle, s.patients)
	if err != nil {
		return nil, err
	}
	if parsed.PatientID == nil {
		return nil, ErrPatientUnresolved
	}
	rec := parsed.Record()
	if err := s.CreateOrder(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
