package prescription

import (
	"context"
	"errors"

	"github.com/ecemedico/ece/internal/platform/fhir"
)

// ErrNoMedications rejects an inbound bundle that carries no
// MedicationRequest at all; there is nothing to import.
var ErrNoMedications = errors.New("bundle contains no medications")

// PatientLookup resolves a business identification to an internal patient
// id. "Not found" is a normal outcome, not an error.
type PatientLookup interface {
	FindIDByIdentification(ctx context.Context, identification string) (int64, bool, error)
}

// Parsed is the flat prescription recovered from an inbound bundle. Drugs
// are re-packed contiguously from slot 1 regardless of entry gaps.
type Parsed struct {
	PatientID    *int64
	Drugs        []Drug
	Instructions string
}

// ParseBundle walks the bundle entries in order. A Patient entry resolves
// the owning patient through the injected lookup; each MedicationRequest
// contributes one drug, keeping only the first MaxDrugs. A note on a
// MedicationRequest overwrites the general instructions, so the last one
// seen wins.
func ParseBundle(ctx context.Context, bundle map[string]interface{}, lookup PatientLookup) (*Parsed, error) {
	parsed := &Parsed{}
	medications := 0

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

		case "MedicationRequest":
			medications++
			if len(parsed.Drugs) >= MaxDrugs {
				continue
			}

			drug := Drug{
				Name:  fhir.ConceptText(resource, "medicationCodeableConcept"),
				Route: "Oral",
			}
			if dosage := fhir.FirstMap(resource, "dosageInstruction"); dosage != nil {
				drug.Dose, drug.Frequency, drug.Duration = SplitDosage(fhir.Str(dosage, "text"))
				if route := fhir.Str(fhir.Map(dosage, "route"), "text"); route != "" {
					drug.Route = route
				}
			}
			parsed.Drugs = append(parsed.Drugs, drug)

			if note := fhir.Str(fhir.FirstMap(resource, "note"), "text"); note != "" {
				parsed.Instructions = note
			}
		}
	}

	if medications == 0 {
		return nil, ErrNoMedications
	}
	return parsed, nil
}

// Record converts the parsed bundle into a persistable Prescription. The
// caller must have verified that a patient id resolved.
func (p *Parsed) Record() *Prescription {
	rec := &Prescription{
		Instructions: p.Instructions,
		Active:       true,
	}
	if p.PatientID != nil {
		rec.PatientID = *p.PatientID
	}
	for i := range p.Drugs {
		if i >= MaxDrugs {
			break
		}
		d := p.Drugs[i]
		rec.Drugs[i] = &d
	}
	return rec
}
