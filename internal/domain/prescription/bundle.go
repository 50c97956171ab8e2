package prescription

import (
	"github.com/ecemedico/ece/internal/domain/patient"
	"github.com/ecemedico/ece/internal/domain/practitioner"
	"github.com/ecemedico/ece/internal/platform/fhir"
	"github.com/ecemedico/ece/pkg/fhirmodels"
)

// DrugMedicationRequest builds the MedicationRequest for one populated drug
// slot. The practitioner may be nil (imported prescriptions have no known
// requester).
func (p *Prescription) DrugMedicationRequest(slot int, d *Drug, pat *patient.Patient, pract *practitioner.Practitioner) map[string]interface{} {
	dosage := map[string]interface{}{
		"text": PackDosage(d),
	}
	if d.Route != "" {
		dosage["route"] = fhir.CodeableConcept{Text: d.Route}
	}
	if qty := DoseQuantity(d.Dose); qty != nil {
		dosage["doseQuantity"] = qty
	}

	result := map[string]interface{}{
		"resourceType":              "MedicationRequest",
		"id":                        p.DrugFHIRID(slot),
		"status":                    p.FHIRStatus(),
		"intent":                    fhirmodels.MedicationRequestIntentOrder,
		"medicationCodeableConcept": fhir.CodeableConcept{Text: d.Name},
		"subject": fhir.Reference{
			Reference: fhir.FormatReference("Patient", pat.FHIRID()),
		},
		"authoredOn":        fhir.FormatInstant(p.Date),
		"dosageInstruction": []map[string]interface{}{dosage},
	}

	if pract != nil {
		result["requester"] = fhir.Reference{
			Reference: fhir.FormatReference("Practitioner", pract.FHIRID()),
			Display:   pract.Name,
		}
	}
	if p.Instructions != "" {
		result["note"] = []fhir.Annotation{{Text: p.Instructions}}
	}

	return result
}

// Bundle composes the prescription export: the Patient first, then one
// MedicationRequest per populated drug slot, in slot order.
func Bundle(p *Prescription, pat *patient.Patient, pract *practitioner.Practitioner) *fhir.Bundle {
	entries := []fhir.BundleEntry{
		fhir.NewEntry(pat.FHIRID(), pat.ToFHIR()),
	}
	for _, pd := range p.PopulatedDrugs() {
		med := p.DrugMedicationRequest(pd.Slot, pd.Drug, pat, pract)
		entries = append(entries, fhir.NewEntry(med["id"].(string), med))
	}
	return fhir.NewCollectionBundle(entries)
}
