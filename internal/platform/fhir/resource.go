package fhir

import (
	"fmt"
	"time"
)

// IdentifierSystem is the clinic-specific URI scheme under which patient
// business identifications are exported.
const IdentifierSystem = "urn:oid:ece-medico"

// ExtExamUnit carries a lab exam's measurement unit next to a valueString,
// which has no standard slot for it.
const ExtExamUnit = "urn:oid:ece-medico:exam-unit"

// LocalExamSystem is the code system used for exam codes that are not in the
// LOINC catalog.
const LocalExamSystem = "urn:oid:ece-medico:examenes"

type Coding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty"`
	Text   string   `json:"text,omitempty"`
}

type Reference struct {
	Reference string `json:"reference,omitempty"`
	Display   string `json:"display,omitempty"`
}

type Identifier struct {
	System string `json:"system,omitempty"`
	Value  string `json:"value,omitempty"`
}

type HumanName struct {
	Use    string   `json:"use,omitempty"`
	Family string   `json:"family,omitempty"`
	Given  []string `json:"given,omitempty"`
}

type ContactPoint struct {
	System string `json:"system,omitempty"`
	Value  string `json:"value,omitempty"`
	Use    string `json:"use,omitempty"`
}

type Address struct {
	Use  string `json:"use,omitempty"`
	Text string `json:"text,omitempty"`
}

type Period struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

type Annotation struct {
	Text string `json:"text"`
}

type Extension struct {
	URL         string `json:"url"`
	ValueString string `json:"valueString,omitempty"`
}

type ReferenceRange struct {
	Text string `json:"text,omitempty"`
}

// LocalID builds the deterministic resource id used throughout the export
// layer: a lowercase kind prefix plus the internal numeric id, e.g.
// "encounter-42". Keeping the internal id visible makes round trips traceable.
func LocalID(kind string, id int64) string {
	return fmt.Sprintf("%s-%d", kind, id)
}

// SlotID builds a deterministic id for a slot-scoped resource, e.g.
// "medreq-7-2" for drug slot 2 of prescription 7.
func SlotID(kind string, id int64, slot int) string {
	return fmt.Sprintf("%s-%d-%d", kind, id, slot)
}

// FormatReference creates a FHIR reference string ("Patient/patient-7").
func FormatReference(resourceType, id string) string {
	return fmt.Sprintf("%s/%s", resourceType, id)
}

// FormatInstant renders a timestamp the way exported resources carry them.
func FormatInstant(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatDate renders a date-only value (birth dates).
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// OperationOutcome represents a FHIR OperationOutcome for errors.
type OperationOutcome struct {
	ResourceType string                  `json:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue"`
}

type OperationOutcomeIssue struct {
	Severity    string `json:"severity"`
	Code        string `json:"code"`
	Diagnostics string `json:"diagnostics,omitempty"`
}

func NewOperationOutcome(severity, code, diagnostics string) *OperationOutcome {
	return &OperationOutcome{
		ResourceType: "OperationOutcome",
		Issue: []OperationOutcomeIssue{
			{Severity: severity, Code: code, Diagnostics: diagnostics},
		},
	}
}

func ErrorOutcome(diagnostics string) *OperationOutcome {
	return NewOperationOutcome("error", "processing", diagnostics)
}

func NotFoundOutcome(resourceType, id string) *OperationOutcome {
	return NewOperationOutcome("error", "not-found", resourceType+"/"+id+" not found")
}
