package visit

import (
	"testing"
	"time"

	"github.com/ecemedico/ece/internal/platform/fhir"
)

func testVisit() *Visit {
	return &Visit{
		ID:         42,
		PatientID:  7,
		Date:       time.Date(2026, 2, 10, 15, 30, 0, 0, time.UTC),
		Reason:     "Dolor de cabeza",
		VitalSigns: "PA: 120/80, T: 36.5°C",
		Diagnosis:  "Migraña",
		Treatment:  "Ibuprofeno 400mg cada 8 horas",
		Clinician:  "Dra. Ana Ruiz",
	}
}

func TestToFHIREncounter(t *testing.T) {
	enc := testVisit().ToFHIREncounter(testVisitPatient())

	if enc["resourceType"] != "Encounter" || enc["id"] != "encounter-42" {
		t.Errorf("header = %v / %v", enc["resourceType"], enc["id"])
	}
	if enc["status"] != "finished" {
		t.Errorf("status = %v, exported visits are always finished", enc["status"])
	}

	class := enc["class"].(fhir.Coding)
	if class.Code != "AMB" || class.System != "http://terminology.hl7.org/CodeSystem/v3-ActCode" {
		t.Errorf("class = %+v", class)
	}

	subject := enc["subject"].(fhir.Reference)
	if subject.Reference != "Patient/patient-7" || subject.Display != "Juan Pérez" {
		t.Errorf("subject = %+v", subject)
	}

	period := enc["period"].(fhir.Period)
	if period.Start != "2026-02-10T15:30:00Z" {
		t.Errorf("period.start = %q", period.Start)
	}

	reasons := enc["reasonCode"].([]fhir.CodeableConcept)
	if len(reasons) != 1 || reasons[0].Text != "Dolor de cabeza" {
		t.Errorf("reasonCode = %+v", reasons)
	}
}

func TestToFHIRCondition(t *testing.T) {
	v := testVisit()
	cond := v.ToFHIRCondition(testVisitPatient())

	if cond["id"] != "condition-42" {
		t.Errorf("id = %v", cond["id"])
	}
	status := cond["clinicalStatus"].(fhir.CodeableConcept)
	if status.Coding[0].Code != "active" {
		t.Errorf("clinicalStatus = %+v", status)
	}
	if cond["code"].(fhir.CodeableConcept).Text != "Migraña" {
		t.Errorf("code = %+v", cond["code"])
	}

	v.Diagnosis = ""
	if v.ToFHIRCondition(testVisitPatient()) != nil {
		t.Error("visit without diagnosis should produce no Condition")
	}
}

func TestToFHIRMedicationRequest(t *testing.T) {
	v := testVisit()
	med := v.ToFHIRMedicationRequest(testVisitPatient())

	if med["id"] != "medication-42" || med["status"] != "active" || med["intent"] != "order" {
		t.Errorf("medication = %v / %v / %v", med["id"], med["status"], med["intent"])
	}
	concept := med["medicationCodeableConcept"].(fhir.CodeableConcept)
	if concept.Text != "Ibuprofeno 400mg cada 8 horas" {
		t.Errorf("medication concept = %+v", concept)
	}
	if med["authoredOn"] != "2026-02-10T15:30:00Z" {
		t.Errorf("authoredOn = %v", med["authoredOn"])
	}

	v.Treatment = ""
	if v.ToFHIRMedicationRequest(testVisitPatient()) != nil {
		t.Error("visit without treatment should produce no MedicationRequest")
	}
}
