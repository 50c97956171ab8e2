package laborder

import (
	"context"
	"errors"

	"github.com/ecemedico/ece/internal/platform/fhir"
)

// ErrNoExams rejects an inbound bundle that carries no Observation at all;
// there is no order to import.
var ErrNoExams = errors.New("bundle contains no exams")

// PatientLookup resolves a business identification to an internal patient
// id. "Not found" is a normal outcome, not an error.
type PatientLookup interface {
	FindIDByIdentification(ctx context.Context, identification string) (int64, bool, error)
}

// Parsed is the flat lab order recovered from an inbound bundle. Exams are
// re-packed contiguously from slot 1 regardless of entry gaps.
type Parsed struct {
	PatientID            *int64
	Exams                []Exam
	Indication           string
	PresumptiveDiagnosis string
	Status               string
}

// ParseBundle walks the bundle entries in order. A Patient entry resolves
// the owning patient through the injected lookup; each Observation
// contributes one exam slot, keeping only the first MaxExams. The
// DiagnosticReport, when present, supplies the indication and presumptive
// diagnosis. The recovered status is "completed" only when every kept exam
// already carries a result, else "pending".
func ParseBundle(ctx context.Context, bundle map[string]interface{}, lookup PatientLookup) (*Parsed, error) {
	parsed := &Parsed{}
	exams := 0

	for _, resource := range fhir.EntryResources(bundle) {
		switch fhir.ResourceType(resource) {
		case "Patient":
			ident := fhir.Str(fhir.FirstMap(resource, "identifier"), "value")
			if ident == "" {
				continue
			}
			id, found, err := lookup.FindIDByIdentification(ctx, ident)
			if err != nil {
				return nil, err
			}
			if found {
				parsed.PatientID = &id
			}

		case "DiagnosticReport":
			parsed.Indication = fhir.ConceptText(resource, "code")
			parsed.PresumptiveDiagnosis = fhir.Str(resource, "conclusion")

		case "Observation":
			exams++
			if len(parsed.Exams) >= MaxExams {
				continue
			}

			code := fhir.Map(resource, "code")
			exam := Exam{
				Name:   fhir.Str(code, "text"),
				Result: fhir.Str(resource, "valueString"),
			}
			if coding := fhir.FirstMap(code, "coding"); coding != nil {
				exam.Code = fhir.Str(coding, "code")
				if exam.Name == "" {
					exam.Name = fhir.Str(coding, "display")
				}
			}
			exam.ReferenceRange = fhir.Str(fhir.FirstMap(resource, "referenceRange"), "text")
			for _, ext := range fhir.Slice(resource, "extension") {
				m, ok := ext.(map[string]interface{})
				if ok && fhir.Str(m, "url") == fhir.ExtExamUnit {
					exam.Unit = fhir.Str(m, "valueString")
				}
			}
			parsed.Exams = append(parsed.Exams, exam)
		}
	}

	if exams == 0 {
		return nil, ErrNoExams
	}

	parsed.Status = StatusCompleted
	for _, e := range parsed.Exams {
		if e.Result == "" {
			parsed.Status = StatusPending
			break
		}
	}
	return parsed, nil
}

// Record converts the parsed bundle into a persistable LabOrder. The caller
// must have verified that a patient id resolved.
func (p *Parsed) Record() *LabOrder {
	rec := &LabOrder{
		Indication:           p.Indication,
		PresumptiveDiagnosis: p.PresumptiveDiagnosis,
		Status:               p.Status,
	}
	if p.PatientID != nil {
		rec.PatientID = *p.PatientID
	}
	for i := range p.Exams {
		if i >= MaxExams {
			break
		}
		e := p.Exams[i]
		rec.Exams[i] = &e
	}
	return rec
}
