package visit

import (
	"strings"

	"github.com/ecemedico/ece/internal/domain/patient"
	"github.com/ecemedico/ece/internal/platform/fhir"
	"github.com/ecemedico/ece/pkg/fhirmodels"
)

// Vital is one key/value pair recovered from the packed vitals string.
type Vital struct {
	Key   string
	Value string
}

// ParseVitals splits the packed "KEY: value, KEY: value" string. Items
// without a colon are dropped; order is preserved. There is no escaping in
// this micro-format, so values must not contain commas.
func ParseVitals(packed string) []Vital {
	var vitals []Vital
	for _, item := range strings.Split(packed, ",") {
		if !strings.Contains(item, ":") {
			continue
		}
		parts := strings.SplitN(item, ":", 2)
		vitals = append(vitals, Vital{
			Key:   strings.TrimSpace(parts[0]),
			Value: strings.TrimSpace(parts[1]),
		})
	}
	return vitals
}

// Vitals with a LOINC mapping, in emission order. Everything else in the
// packed string is carried in the record but dropped from the FHIR export.
var vitalCodes = []struct {
	key     string
	idKind  string
	code    string
	display string
	text    string
}{
	{"PA", "obs-pa", "85354-9", "Blood pressure panel", "Presión Arterial"},
	{"T", "obs-temp", "8310-5", "Body temperature", "Temperatura"},
}

// VitalObservations builds one Observation per recognized vital key found in
// the visit's packed vitals string, always blood pressure before
// temperature. When a key repeats, the last occurrence wins. A bare "°C"
// left by the capture form counts as an empty temperature and is skipped.
// Values stay untyped strings, even when numeric.
func (v *Visit) VitalObservations(p *patient.Patient) []map[string]interface{} {
	values := make(map[string]string)
	for _, vital := range ParseVitals(v.VitalSigns) {
		values[vital.Key] = vital.Value
	}

	var observations []map[string]interface{}
	for _, mapping := range vitalCodes {
		value := values[mapping.key]
		if value == "" {
			continue
		}
		if mapping.key == "T" && value == "°C" {
			continue
		}
		observations = append(observations, map[string]interface{}{
			"resourceType": "Observation",
			"id":           fhir.LocalID(mapping.idKind, v.ID),
			"status":       fhirmodels.ObservationStatusFinal,
			"code": fhir.CodeableConcept{
				Coding: []fhir.Coding{{
					System:  fhirmodels.SystemLOINC,
					Code:    mapping.code,
					Display: mapping.display,
				}},
				Text: mapping.text,
			},
			"subject": fhir.Reference{
				Reference: fhir.FormatReference("Patient", p.FHIRID()),
			},
			"valueString": value,
		})
	}
	return observations
}
