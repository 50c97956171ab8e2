package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ecemedico/ece/internal/domain/patient"
	"github.com/ecemedico/ece/internal/domain/practitioner"
)

var (
	ErrNotFound      = errors.New("appointment not found")
	ErrInvalidStatus = errors.New("invalid appointment status")
)

type PatientStore interface {
	GetPatient(ctx context.Context, id int64) (*patient.Patient, error)
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
	StatusScheduled: true,
	StatusConfirmed: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if a.PatientID == 0 {
		return fmt.Errorf("paciente_id is required")
	}
	if a.PractitionerID == 0 {
		return fmt.Errorf("medico_id is required")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("fecha is required")
	}
	if _, err := s.patients.GetPatient(ctx, a.PatientID); err != nil {
		return fmt.Errorf("paciente %d: %w", a.PatientID, err)
	}
	if _, err := s.practitioners.GetPractitioner(ctx, a.PractitionerID); err != nil {
		return fmt.Errorf("medico %d: %w", a.PractitionerID, err)
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validStatus[a.Status] {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, a.Status)
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*Appointment, error) {
	if !validStatus[status] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	a, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	current, err := s.GetAppointment(ctx, a.ID)
	if err != nil {
		return err
	}
	a.PatientID = current.PatientID
	a.CreatedAt = current.CreatedAt
	if a.Status == "" {
		a.Status = current.Status
	}
	if !validStatus[a.Status] {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, a.Status)
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByPractitioner(ctx context.Context, practitionerID int64, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByPractitioner(ctx, practitionerID, limit, offset)
}
