package fhirmodels

// Common FHIR R4 value set constants used across the application.

// AdministrativeGender codes.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderOther   = "other"
	GenderUnknown = "unknown"
)

// EncounterStatus values per FHIR R4. Exported visits are always finished;
// the rest exist for completeness of the value set.
const (
	EncounterStatusPlanned    = "planned"
	EncounterStatusInProgress = "in-progress"
	EncounterStatusFinished   = "finished"
	EncounterStatusCancelled  = "cancelled"
)

// EncounterClass codes per FHIR R4 v3-ActCode.
const (
	EncounterClassAmbulatory = "AMB"
	EncounterClassEmergency  = "EMER"
	EncounterClassInpatient  = "IMP"
	EncounterClassVirtual    = "VR"
)

// ObservationStatus codes.
const (
	ObservationStatusRegistered  = "registered"
	ObservationStatusPreliminary = "preliminary"
	ObservationStatusFinal       = "final"
	ObservationStatusCancelled   = "cancelled"
)

// MedicationRequest status and intent codes.
const (
	MedicationRequestActive    = "active"
	MedicationRequestCancelled = "cancelled"
	MedicationRequestCompleted = "completed"

	MedicationRequestIntentOrder = "order"
)

// DiagnosticReportStatus codes.
const (
	DiagnosticReportRegistered = "registered"
	DiagnosticReportPartial    = "partial"
	DiagnosticReportFinal      = "final"
	DiagnosticReportCancelled  = "cancelled"
)

// ConditionClinicalStatus codes.
const (
	ConditionActive   = "active"
	ConditionInactive = "inactive"
	ConditionResolved = "resolved"
)

// Well-known code system URIs.
const (
	SystemLOINC             = "http://loinc.org"
	SystemV3ActCode         = "http://terminology.hl7.org/CodeSystem/v3-ActCode"
	SystemConditionClinical = "http://terminology.hl7.org/CodeSystem/condition-clinical"
)
