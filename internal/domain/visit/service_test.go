package visit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ecemedico/ece/internal/domain/patient"
)

type mockRepo struct {
	byID   map[int64]*Visit
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: make(map[int64]*Visit), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, v *Visit) error {
	v.ID = m.nextID
	m.nextID++
	m.byID[v.ID] = v
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Visit, error) {
	v, ok := m.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return v, nil
}

func (m *mockRepo) Update(_ context.Context, v *Visit) error {
	m.byID[v.ID] = v
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	delete(m.byID, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, _, _ int) ([]*Visit, int, error) {
	var out []*Visit
	for _, v := range m.byID {
		out = append(out, v)
	}
	return out, len(out), nil
}

func (m *mockRepo) ListByPatient(ctx context.Context, patientID int64, _, _ int) ([]*Visit, int, error) {
	visits, err := m.AllByPatient(ctx, patientID)
	return visits, len(visits), err
}

func (m *mockRepo) AllByPatient(_ context.Context, patientID int64) ([]*Visit, error) {
	var out []*Visit
	for _, v := range m.byID {
		if v.PatientID == patientID {
			out = append(out, v)
		}
	}
	// newest first, as the real repository orders them
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Date.After(out[i].Date) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

type mockPatients struct {
	patients map[int64]*patient.Patient
}

func (m *mockPatients) GetPatient(_ context.Context, id int64) (*patient.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, patient.ErrNotFound
	}
	return p, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	patients := &mockPatients{patients: map[int64]*patient.Patient{
		7: testVisitPatient(),
	}}
	return NewService(repo, patients), repo
}

func TestCreateVisit(t *testing.T) {
	svc, _ := newTestService()

	v := &Visit{PatientID: 7, Reason: "Control"}
	if err := svc.CreateVisit(context.Background(), v); err != nil {
		t.Fatalf("CreateVisit: %v", err)
	}
	if v.ID == 0 {
		t.Error("id not assigned")
	}
	if v.Date.IsZero() {
		t.Error("missing date should default to now")
	}
}

func TestCreateVisit_UnknownPatient(t *testing.T) {
	svc, _ := newTestService()
	err := svc.CreateVisit(context.Background(), &Visit{PatientID: 99})
	if !errors.Is(err, patient.ErrNotFound) {
		t.Errorf("err = %v, want patient not found", err)
	}

	if err := svc.CreateVisit(context.Background(), &Visit{}); err == nil {
		t.Error("expected error for missing paciente_id")
	}
}

func TestExportEncounterBundle(t *testing.T) {
	svc, repo := newTestService()
	v := testVisit()
	repo.byID[v.ID] = v

	bundle, err := svc.ExportEncounterBundle(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("ExportEncounterBundle: %v", err)
	}
	if len(bundle.Entry) != 5 {
		t.Errorf("entries = %d, want 5", len(bundle.Entry))
	}

	if _, err := svc.ExportEncounterBundle(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestExportPatientBundle_NewestFirst(t *testing.T) {
	svc, repo := newTestService()
	repo.byID[1] = &Visit{ID: 1, PatientID: 7, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	repo.byID[2] = &Visit{ID: 2, PatientID: 7, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}

	bundle, err := svc.ExportPatientBundle(context.Background(), 7)
	if err != nil {
		t.Fatalf("ExportPatientBundle: %v", err)
	}
	if len(bundle.Entry) != 3 {
		t.Fatalf("entries = %d, want patient + 2 encounters", len(bundle.Entry))
	}
	if bundle.Entry[1].FullURL != "urn:uuid:encounter-2" {
		t.Errorf("first encounter = %s, want the most recent visit", bundle.Entry[1].FullURL)
	}
}
