package laborder

import (
	"time"

	"github.com/ecemedico/ece/internal/platform/fhir"
	"github.com/ecemedico/ece/pkg/fhirmodels"
)

// MaxExams is the number of numbered exam slots a lab order carries.
const MaxExams = 10

// Exam is one ordered laboratory test. An exam exists when its name is
// non-empty; results arrive later and may stay empty.
type Exam struct {
	Code           string `json:"codigo"`
	Name           string `json:"nombre"`
	Result         string `json:"resultado"`
	ReferenceRange string `json:"rango_referencia"`
	Unit           string `json:"unidad"`
}

// Lab order lifecycle states. Transitions are driven by the CRUD layer;
// the conversion layer only reads them, or infers one on import.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// LabOrder maps to the ordenes_laboratorio table plus its numbered exam
// slots. Like prescriptions, the numbered-field wire shape exists only at
// the JSON boundary.
type LabOrder struct {
	ID                   int64
	PatientID            int64
	PractitionerID       *int64
	VisitID              *int64
	Date                 time.Time
	Exams                [MaxExams]*Exam
	Indication           string
	PresumptiveDiagnosis string
	Urgent               bool
	Status               string
}

// PopulatedExam pairs an exam with its 1-based slot number.
type PopulatedExam struct {
	Slot int
	Exam *Exam
}

// PopulatedExams returns the exams that exist, in slot order, silently
// skipping gaps.
func (o *LabOrder) PopulatedExams() []PopulatedExam {
	var out []PopulatedExam
	for i, e := range o.Exams {
		if e != nil && e.Name != "" {
			out = append(out, PopulatedExam{Slot: i + 1, Exam: e})
		}
	}
	return out
}

var reportStatus = map[string]string{
	StatusPending:    fhirmodels.DiagnosticReportRegistered,
	StatusInProgress: fhirmodels.DiagnosticReportPartial,
	StatusCompleted:  fhirmodels.DiagnosticReportFinal,
	StatusCancelled:  fhirmodels.DiagnosticReportCancelled,
}

// FHIRReportStatus maps the order status onto the DiagnosticReport status
// value set. Unrecognized statuses fall back to "registered".
func (o *LabOrder) FHIRReportStatus() string {
	if s, ok := reportStatus[o.Status]; ok {
		return s
	}
	return fhirmodels.DiagnosticReportRegistered
}

// FHIRID returns the deterministic DiagnosticReport id ("diagreport-4").
func (o *LabOrder) FHIRID() string {
	return fhir.LocalID("diagreport", o.ID)
}

// ExamFHIRID returns the deterministic id for one exam slot's Observation
// ("obs-lab-4-2" for slot 2 of order 4).
func (o *LabOrder) ExamFHIRID(slot int) string {
	return fhir.SlotID("obs-lab", o.ID, slot)
}
