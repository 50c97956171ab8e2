package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ecemedico/ece/internal/domain/patient"
	"github.com/ecemedico/ece/internal/domain/practitioner"
)

type mockRepo struct {
	byID   map[int64]*Appointment
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[int64]*Appointment), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = m.nextID
	m.nextID++
	m.byID[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Appointment, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return a, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	m.byID[a.ID] = a
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	delete(m.byID, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, _, _ int) ([]*Appointment, int, error) {
	return nil, 0, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, _ int64, _, _ int) ([]*Appointment, int, error) {
	return nil, 0, nil
}

func (m *mockRepo) ListByPractitioner(_ context.Context, _ int64, _, _ int) ([]*Appointment, int, error) {
	return nil, 0, nil
}

type mockPatients struct{}

func (mockPatients) GetPatient(_ context.Context, id int64) (*patient.Patient, error) {
	if id != 7 {
		return nil, patient.ErrNotFound
	}
	return &patient.Patient{ID: 7}, nil
}

type mockPractitioners struct{}

func (mockPractitioners) GetPractitioner(_ context.Context, id int64) (*practitioner.Practitioner, error) {
	if id != 3 {
		return nil, practitioner.ErrNotFound
	}
	return &practitioner.Practitioner{ID: 3}, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, mockPatients{}, mockPractitioners{}), repo
}

func testAppointment() *Appointment {
	return &Appointment{
		PatientID:      7,
		PractitionerID: 3,
		Date:           time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		Reason:         "Control mensual",
	}
}

func TestCreateAppointment(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a := testAppointment()
	if err := svc.CreateAppointment(ctx, a); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Errorf("status = %q, want programada default", a.Status)
	}
}

func TestCreateAppointment_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*Appointment)
	}{
		{"missing patient", func(a *Appointment) { a.PatientID = 0 }},
		{"missing practitioner", func(a *Appointment) { a.PractitionerID = 0 }},
		{"missing date", func(a *Appointment) { a.Date = time.Time{} }},
		{"unknown patient", func(a *Appointment) { a.PatientID = 99 }},
		{"unknown practitioner", func(a *Appointment) { a.PractitionerID = 99 }},
		{"bad status", func(a *Appointment) { a.Status = "pendiente" }},
	}
	for _, tc := range cases {
		a := testAppointment()
		tc.mutate(a)
		if err := svc.CreateAppointment(ctx, a); err == nil {
			t.Errorf("%s: accepted", tc.name)
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a := testAppointment()
	if err := svc.CreateAppointment(ctx, a); err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateStatus(ctx, a.ID, StatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != StatusConfirmed {
		t.Errorf("status = %q", updated.Status)
	}

	if _, err := svc.UpdateStatus(ctx, a.ID, "no-vino"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
	if _, err := svc.UpdateStatus(ctx, 999, StatusCancelled); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateAppointment_PreservesPatient(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a := testAppointment()
	if err := svc.CreateAppointment(ctx, a); err != nil {
		t.Fatal(err)
	}

	update := &Appointment{ID: a.ID, PractitionerID: 3, Date: a.Date.Add(time.Hour), Reason: "Reagendada"}
	if err := svc.UpdateAppointment(ctx, update); err != nil {
		t.Fatalf("UpdateAppointment: %v", err)
	}
	if update.PatientID != 7 {
		t.Errorf("patient id = %d, updates must not reassign the patient", update.PatientID)
	}
	if update.Status != StatusScheduled {
		t.Errorf("status = %q, want preserved", update.Status)
	}
}
