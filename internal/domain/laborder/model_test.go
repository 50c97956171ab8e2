package laborder

import (
	"testing"
	"time"
)

func testOrder() *LabOrder {
	practID := int64(3)
	o := &LabOrder{
		ID:             4,
		PatientID:      7,
		PractitionerID: &practID,
		Date:           time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Indication:     "Control de diabetes",
		Status:         StatusPending,
	}
	o.Exams[0] = &Exam{
		Code:           "2345-7",
		Name:           "Glucosa en Ayunas",
		ReferenceRange: "70-100",
		Unit:           "mg/dL",
	}
	return o
}

func TestPopulatedExams_SkipsGaps(t *testing.T) {
	o := testOrder()
	o.Exams[3] = &Exam{Code: "718-7", Name: "Hemoglobina"} // slot 4; 2-3 empty

	populated := o.PopulatedExams()
	if len(populated) != 2 {
		t.Fatalf("populated = %d, want 2", len(populated))
	}
	if populated[0].Slot != 1 || populated[1].Slot != 4 {
		t.Errorf("slots = %d, %d, want 1, 4", populated[0].Slot, populated[1].Slot)
	}
}

func TestPopulatedExams_NamelessSlotDoesNotCount(t *testing.T) {
	o := testOrder()
	o.Exams[1] = &Exam{Code: "999-9"}

	if len(o.PopulatedExams()) != 1 {
		t.Error("exam without a name treated as populated")
	}
}

func TestFHIRReportStatus(t *testing.T) {
	cases := []struct {
		status string
		want   string
	}{
		{StatusPending, "registered"},
		{StatusInProgress, "partial"},
		{StatusCompleted, "final"},
		{StatusCancelled, "cancelled"},
		{"algo-raro", "registered"},
		{"", "registered"},
	}
	for _, tc := range cases {
		o := testOrder()
		o.Status = tc.status
		if got := o.FHIRReportStatus(); got != tc.want {
			t.Errorf("FHIRReportStatus(%q) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestDeterministicIDs(t *testing.T) {
	o := testOrder()
	if o.FHIRID() != "diagreport-4" {
		t.Errorf("report id = %q", o.FHIRID())
	}
	if o.ExamFHIRID(2) != "obs-lab-4-2" {
		t.Errorf("exam id = %q", o.ExamFHIRID(2))
	}
}
