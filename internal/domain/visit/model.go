package visit

import (
	"time"

	"github.com/ecemedico/ece/internal/domain/patient"
	"github.com/ecemedico/ece/internal/platform/fhir"
	"github.com/ecemedico/ece/pkg/fhirmodels"
)

// Visit maps to the consultas table. VitalSigns is a single packed string in
// the informal "KEY: value, KEY: value" format the clinic staff types in.
type Visit struct {
	ID         int64     `db:"id" json:"id"`
	PatientID  int64     `db:"paciente_id" json:"paciente_id"`
	Date       time.Time `db:"fecha" json:"fecha"`
	Reason     string    `db:"motivo" json:"motivo"`
	VitalSigns string    `db:"signos_vitales" json:"signos_vitales"`
	Symptoms   string    `db:"sintomas" json:"sintomas"`
	Diagnosis  string    `db:"diagnostico" json:"diagnostico"`
	Treatment  string    `db:"tratamiento" json:"tratamiento"`
	Notes      string    `db:"observaciones" json:"observaciones"`
	Clinician  string    `db:"medico" json:"medico"`
}

// FHIRID returns the deterministic exported resource id ("encounter-42").
func (v *Visit) FHIRID() string {
	return fhir.LocalID("encounter", v.ID)
}

// ToFHIREncounter builds the Encounter resource for this visit. Exported
// visits are always finished ambulatory encounters.
func (v *Visit) ToFHIREncounter(p *patient.Patient) map[string]interface{} {
	result := map[string]interface{}{
		"resourceType": "Encounter",
		"id":           v.FHIRID(),
		"status":       fhirmodels.EncounterStatusFinished,
		"class": fhir.Coding{
			System:  fhirmodels.SystemV3ActCode,
			Code:    fhirmodels.EncounterClassAmbulatory,
			Display: "ambulatory",
		},
		"subject": fhir.Reference{
			Reference: fhir.FormatReference("Patient", p.FHIRID()),
			Display:   p.FullName(),
		},
		"period": fhir.Period{Start: fhir.FormatInstant(v.Date)},
	}
	if v.Reason != "" {
		result["reasonCode"] = []fhir.CodeableConcept{{Text: v.Reason}}
	}
	return result
}

// ToFHIRCondition builds the diagnosis Condition, or nil when the visit has
// no diagnosis recorded.
func (v *Visit) ToFHIRCondition(p *patient.Patient) map[string]interface{} {
	if v.Diagnosis == "" {
		return nil
	}
	return map[string]interface{}{
		"resourceType": "Condition",
		"id":           fhir.LocalID("condition", v.ID),
		"clinicalStatus": fhir.CodeableConcept{
			Coding: []fhir.Coding{{
				System: fhirmodels.SystemConditionClinical,
				Code:   fhirmodels.ConditionActive,
			}},
		},
		"code": fhir.CodeableConcept{Text: v.Diagnosis},
		"subject": fhir.Reference{
			Reference: fhir.FormatReference("Patient", p.FHIRID()),
		},
	}
}

// ToFHIRMedicationRequest builds the treatment MedicationRequest, or nil
// when the visit has no treatment recorded. The treatment is free text, not
// a structured prescription.
func (v *Visit) ToFHIRMedicationRequest(p *patient.Patient) map[string]interface{} {
	if v.Treatment == "" {
		return nil
	}
	return map[string]interface{}{
		"resourceType":              "MedicationRequest",
		"id":                        fhir.LocalID("medication", v.ID),
		"status":                    fhirmodels.MedicationRequestActive,
		"intent":                    fhirmodels.MedicationRequestIntentOrder,
		"medicationCodeableConcept": fhir.CodeableConcept{Text: v.Treatment},
		"subject": fhir.Reference{
			Reference: fhir.FormatReference("Patient", p.FHIRID()),
		},
		"authoredOn": fhir.FormatInstant(v.Date),
	}
}
