package laborder

import (
	"github.com/ecemedico/ece/internal/domain/patient"
	"github.com/ecemedico/ece/internal/domain/practitioner"
	"github.com/ecemedico/ece/internal/platform/catalog"
	"github.com/ecemedico/ece/internal/platform/fhir"
	"github.com/ecemedico/ece/pkg/fhirmodels"
)

// ExamObservation builds the Observation for one populated exam slot. A code
// found in the LOINC catalog is exported with the catalog's display; any
// other code is carried through under the clinic's local code system rather
// than rejected.
func (o *LabOrder) ExamObservation(slot int, e *Exam, pat *patient.Patient) map[string]interface{} {
	coding := fhir.Coding{
		System:  fhir.LocalExamSystem,
		Code:    e.Code,
		Display: e.Name,
	}
	if entry, ok := catalog.Lookup(e.Code); ok {
		coding = fhir.Coding{
			System:  fhirmodels.SystemLOINC,
			Code:    entry.Code,
			Display: entry.Name,
		}
	}

	status := fhirmodels.ObservationStatusRegistered
	if e.Result != "" {
		status = fhirmodels.ObservationStatusFinal
	}

	result := map[string]interface{}{
		"resourceType": "Observation",
		"id":           o.ExamFHIRID(slot),
		"status":       status,
		"code": fhir.CodeableConcept{
			Coding: []fhir.Coding{coding},
			Text:   e.Name,
		},
		"subject": fhir.Reference{
			Reference: fhir.FormatReference("Patient", pat.FHIRID()),
		},
		"effectiveDateTime": fhir.FormatInstant(o.Date),
	}

	if e.Result != "" {
		result["valueString"] = e.Result
	}
	if e.ReferenceRange != "" {
		result["referenceRange"] = []fhir.ReferenceRange{{Text: e.ReferenceRange}}
	}
	// valueString has no unit slot, so the unit rides in an extension.
	if e.Unit != "" {
		result["extension"] = []fhir.Extension{{URL: fhir.ExtExamUnit, ValueString: e.Unit}}
	}

	return result
}

// Report builds the DiagnosticReport that aggregates the order's
// Observations. The practitioner may be nil for imported orders.
func (o *LabOrder) Report(pat *patient.Patient, pract *practitioner.Practitioner) map[string]interface{} {
	var results []fhir.Reference
	for _, pe := range o.PopulatedExams() {
		results = append(results, fhir.Reference{
			Reference: fhir.FormatReference("Observation", o.ExamFHIRID(pe.Slot)),
		})
	}

	code := fhir.CodeableConcept{Text: "Orden de laboratorio"}
	if o.Indication != "" {
		code.Text = o.Indication
	}

	report := map[string]interface{}{
		"resourceType": "DiagnosticReport",
		"id":           o.FHIRID(),
		"status":       o.FHIRReportStatus(),
		"code":         code,
		"subject": fhir.Reference{
			Reference: fhir.FormatReference("Patient", pat.FHIRID()),
			Display:   pat.FullName(),
		},
		"effectiveDateTime": fhir.FormatInstant(o.Date),
		"result":            results,
	}

	if pract != nil {
		report["performer"] = []fhir.Reference{{
			Reference: fhir.FormatReference("Practitioner", pract.FHIRID()),
			Display:   pract.Name,
		}}
	}
	if o.PresumptiveDiagnosis != "" {
		report["conclusion"] = o.PresumptiveDiagnosis
	}

	return report
}

// Bundle composes the lab-order export: Patient, then the DiagnosticReport,
// then one Observation per populated exam slot in slot order.
func Bundle(o *LabOrder, pat *patient.Patient, pract *practitioner.Practitioner) *fhir.Bundle {
	report := o.Report(pat, pract)
	entries := []fhir.BundleEntry{
		fhir.NewEntry(pat.FHIRID(), pat.ToFHIR()),
		fhir.NewEntry(report["id"].(string), report),
	}
	for _, pe := range o.PopulatedExams() {
		obs := o.ExamObservation(pe.Slot, pe.Exam, pat)
		entries = append(entries, fhir.NewEntry(obs["id"].(string), obs))
	}
	return fhir.NewCollectionBundle(entries)
}
