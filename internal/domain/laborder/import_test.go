package laborder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

type mockLookup struct {
	ids map[string]int64
}

func (m *mockLookup) FindIDByIdentification(_ context.Context, ident string) (int64, bool, error) {
	id, ok := m.ids[ident]
	return id, ok, nil
}

func decodeBundle(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	var bundle map[string]interface{}
	if err := json.Unmarshal(raw, &bundle); err != nil {
		t.Fatal(err)
	}
	return bundle
}

func TestParseBundle_RoundTripFromExport(t *testing.T) {
	o := testOrder()
	o.Exams[0].Result = "95"
	o.PresumptiveDiagnosis = "Diabetes tipo 2"
	bundle := decodeBundle(t, Bundle(o, testLabPatient(), testLabPractitioner()))

	lookup := &mockLookup{ids: map[string]int64{"CC-1": 7}}
	parsed, err := ParseBundle(context.Background(), bundle, lookup)
	if err != nil {
		t.Fatalf("ParseBundle: %v", err)
	}

	if parsed.PatientID == nil || *parsed.PatientID != 7 {
		t.Errorf("patient id = %v, want 7", parsed.PatientID)
	}
	if len(parsed.Exams) != 1 {
		t.Fatalf("exams = %d, want 1", len(parsed.Exams))
	}
	e := parsed.Exams[0]
	if e.Code != "2345-7" || e.Name != "Glucosa en Ayunas" || e.Result != "95" ||
		e.ReferenceRange != "70-100" || e.Unit != "mg/dL" {
		t.Errorf("exam = %+v", e)
	}
	if parsed.Indication != "Control de diabetes" || parsed.PresumptiveDiagnosis != "Diabetes tipo 2" {
		t.Errorf("indication/diagnosis = %q / %q", parsed.Indication, parsed.PresumptiveDiagnosis)
	}
}

func TestParseBundle_StatusInference(t *testing.T) {
	o := testOrder()
	o.Exams[0].Result = "95"
	o.Exams[1] = &Exam{Code: "718-7", Name: "Hemoglobina", Result: "14.2"}

	parsed, err := ParseBundle(context.Background(), decodeBundle(t, Bundle(o, testLabPatient(), nil)), &mockLookup{})
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Status != StatusCompleted {
		t.Errorf("status = %q, want completed when every exam has a result", parsed.Status)
	}

	o.Exams[1].Result = ""
	parsed, err = ParseBundle(context.Background(), decodeBundle(t, Bundle(o, testLabPatient(), nil)), &mockLookup{})
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Status != StatusPending {
		t.Errorf("status = %q, want pending with a missing result", parsed.Status)
	}
}

func TestParseBundle_PatientNotFoundIsNotAnError(t *testing.T) {
	o := testOrder()
	bundle := decodeBundle(t, Bundle(o, testLabPatient(), nil))

	parsed, err := ParseBundle(context.Background(), bundle, &mockLookup{})
	if err != nil {
		t.Fatalf("ParseBundle: %v", err)
	}
	if parsed.PatientID != nil {
		t.Errorf("patient id = %v, want nil for unresolved patient", parsed.PatientID)
	}
	if len(parsed.Exams) != 1 {
		t.Errorf("exams still parsed: %d", len(parsed.Exams))
	}
}

func TestParseBundle_NoExams(t *testing.T) {
	bundle := map[string]interface{}{
		"resourceType": "Bundle",
		"type":         "collection",
		"entry": []interface{}{
			map[string]interface{}{"resource": map[string]interface{}{"resourceType": "Patient"}},
			map[string]interface{}{"resource": map[string]interface{}{"resourceType": "DiagnosticReport"}},
		},
	}
	_, err := ParseBundle(context.Background(), bundle, &mockLookup{})
	if !errors.Is(err, ErrNoExams) {
		t.Errorf("err = %v, want ErrNoExams", err)
	}
}

func TestParseBundle_KeepsFirstTenExams(t *testing.T) {
	var entries []interface{}
	for i := 0; i < 12; i++ {
		entries = append(entries, map[string]interface{}{"resource": map[string]interface{}{
			"resourceType": "Observation",
			"code":         map[string]interface{}{"text": fmt.Sprintf("examen-%d", i+1)},
			"valueString":  "ok",
		}})
	}
	parsed, err := ParseBundle(context.Background(), map[string]interface{}{"entry": entries}, &mockLookup{})
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed.Exams) != MaxExams {
		t.Fatalf("exams = %d, want %d", len(parsed.Exams), MaxExams)
	}
	if parsed.Exams[9].Name != "examen-10" {
		t.Errorf("last kept exam = %q", parsed.Exams[9].Name)
	}
}

func TestParseBundle_NameFallsBackToCodingDisplay(t *testing.T) {
	bundle := map[string]interface{}{"entry": []interface{}{
		map[string]interface{}{"resource": map[string]interface{}{
			"resourceType": "Observation",
			"code": map[string]interface{}{
				"coding": []interface{}{map[string]interface{}{
					"code":    "718-7",
					"display": "Hemoglobina",
				}},
			},
		}},
	}}
	parsed, err := ParseBundle(context.Background(), bundle, &mockLookup{})
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Exams[0].Name != "Hemoglobina" || parsed.Exams[0].Code != "718-7" {
		t.Errorf("exam = %+v", parsed.Exams[0])
	}
}

func TestParsedRecord_PacksFromSlotOne(t *testing.T) {
	pid := int64(7)
	p := &Parsed{
		PatientID: &pid,
		Exams:     []Exam{{Name: "Glucosa en Ayunas", Code: "2345-7"}},
		Status:    StatusPending,
	}
	rec := p.Record()
	if rec.PatientID != 7 || rec.Exams[0] == nil || rec.Exams[0].Name != "Glucosa en Ayunas" {
		t.Errorf("record = %+v", rec)
	}
	if rec.Status != StatusPending {
		t.Errorf("status = %q", rec.Status)
	}
}
