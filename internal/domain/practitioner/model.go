package practitioner

import (
	"time"

	"github.com/ecemedico/ece/internal/platform/fhir"
)

// Practitioner maps to the medicos table.
type Practitioner struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"nombre" json:"nombre"`
	Code      string    `db:"codigo" json:"codigo"`
	Specialty string    `db:"especialidad" json:"especialidad"`
	Phone     string    `db:"telefono" json:"telefono"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"creado_en" json:"creado_en"`
}

// FHIRID returns the deterministic exported resource id ("practitioner-3").
func (p *Practitioner) FHIRID() string {
	return fhir.LocalID("practitioner", p.ID)
}

func (p *Practitioner) ToFHIR() map[string]interface{} {
	result := map[string]interface{}{
		"resourceType": "Practitioner",
		"id":           p.FHIRID(),
		"identifier": []fhir.Identifier{
			{System: fhir.IdentifierSystem, Value: p.Code},
		},
		"name": []fhir.HumanName{
			{Use: "official", Family: p.Name},
		},
		"active": true,
	}

	var telecom []fhir.ContactPoint
	if p.Phone != "" {
		telecom = append(telecom, fhir.ContactPoint{System: "phone", Value: p.Phone})
	}
	if p.Email != "" {
		telecom = append(telecom, fhir.ContactPoint{System: "email", Value: p.Email})
	}
	if len(telecom) > 0 {
		result["telecom"] = telecom
	}

	if p.Specialty != "" {
		result["qualification"] = []map[string]interface{}{
			{"code": fhir.CodeableConcept{Text: p.Specialty}},
		}
	}

	return result
}
