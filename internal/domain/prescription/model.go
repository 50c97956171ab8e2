package prescription

import (
	"time"

	"github.com/ecemedico/ece/internal/platform/fhir"
	"github.com/ecemedico/ece/pkg/fhirmodels"
)

// MaxDrugs is the number of numbered drug slots a prescription carries.
const MaxDrugs = 5

// Drug is one prescribed medication. A drug exists when its name is
// non-empty; that is the only presence test the slot logic uses.
type Drug struct {
	Name      string `json:"nombre"`
	Dose      string `json:"dosis"`
	Frequency string `json:"frecuencia"`
	Duration  string `json:"duracion"`
	Route     string `json:"via"`
}

// Prescription maps to the recetas table plus its numbered drug slots.
// Slots are stored in order with empty slots nil; the numbered-field wire
// shape (medicamento1_nombre ... medicamento5_via) exists only at the JSON
// boundary.
type Prescription struct {
	ID             int64
	PatientID      int64
	PractitionerID *int64
	Date           time.Time
	Drugs          [MaxDrugs]*Drug
	Instructions   string
	Active         bool
}

// PopulatedDrug pairs a drug with its 1-based slot number.
type PopulatedDrug struct {
	Slot int
	Drug *Drug
}

// PopulatedDrugs returns the drugs that exist, in slot order. A gap (an
// empty slot below a filled one) is silently skipped, never mis-indexed.
func (p *Prescription) PopulatedDrugs() []PopulatedDrug {
	var out []PopulatedDrug
	for i, d := range p.Drugs {
		if d != nil && d.Name != "" {
			out = append(out, PopulatedDrug{Slot: i + 1, Drug: d})
		}
	}
	return out
}

// FHIRStatus maps the active flag onto the MedicationRequest status code.
func (p *Prescription) FHIRStatus() string {
	if p.Active {
		return fhirmodels.MedicationRequestActive
	}
	return fhirmodels.MedicationRequestCancelled
}

// DrugFHIRID returns the deterministic id for one drug slot's
// MedicationRequest ("medreq-7-2" for slot 2 of prescription 7).
func (p *Prescription) DrugFHIRID(slot int) string {
	return fhir.SlotID("medreq", p.ID, slot)
}
