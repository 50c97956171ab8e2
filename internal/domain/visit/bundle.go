package visit

import (
	"github.com/ecemedico/ece/internal/domain/patient"
	"github.com/ecemedico/ece/internal/platform/fhir"
)

// EncounterBundle composes the full export of one visit: the Encounter
// first, then its vital-sign Observations, the diagnosis Condition, and the
// treatment MedicationRequest, each present only when the source field is.
func EncounterBundle(v *Visit, p *patient.Patient) *fhir.Bundle {
	entries := []fhir.BundleEntry{
		fhir.NewEntry(v.FHIRID(), v.ToFHIREncounter(p)),
	}

	for _, obs := range v.VitalObservations(p) {
		entries = append(entries, fhir.NewEntry(obs["id"].(string), obs))
	}
	if condition := v.ToFHIRCondition(p); condition != nil {
		entries = append(entries, fhir.NewEntry(condition["id"].(string), condition))
	}
	if medication := v.ToFHIRMedicationRequest(p); medication != nil {
		entries = append(entries, fhir.NewEntry(medication["id"].(string), medication))
	}

	return fhir.NewCollectionBundle(entries)
}

// PatientBundle composes the Patient resource followed by its Encounters in
// descending chronological order. It deliberately does not recurse into the
// per-visit sub-resources the single-encounter bundle carries; callers
// wanting vitals or diagnoses fetch each encounter bundle individually.
func PatientBundle(p *patient.Patient, visits []*Visit) *fhir.Bundle {
	entries := []fhir.BundleEntry{
		fhir.NewEntry(p.FHIRID(), p.ToFHIR()),
	}
	for _, v := range visits {
		entries = append(entries, fhir.NewEntry(v.FHIRID(), v.ToFHIREncounter(p)))
	}
	return fhir.NewCollectionBundle(entries)
}
