package patient

import (
	"time"

	"github.com/ecemedico/ece/internal/platform/fhir"
	"github.com/ecemedico/ece/pkg/fhirmodels"
)

// Patient maps to the pacientes table.
type Patient struct {
	ID             int64      `db:"id" json:"id"`
	Identification string     `db:"identificacion" json:"identificacion"`
	GivenName      string     `db:"nombre" json:"nombre"`
	FamilyName     string     `db:"apellidos" json:"apellidos"`
	BirthDate      *time.Time `db:"fecha_nacimiento" json:"fecha_nacimiento,omitempty"`
	Gender         string     `db:"genero" json:"genero"`
	Phone          string     `db:"telefono" json:"telefono"`
	Email          string     `db:"email" json:"email"`
	Address        string     `db:"direccion" json:"direccion"`
	CreatedAt      time.Time  `db:"creado_en" json:"creado_en"`
}

// Gender labels as the clinic records them.
const (
	GeneroMasculino = "Masculino"
	GeneroFemenino  = "Femenino"
	GeneroOtro      = "Otro"
)

var generoToFHIR = map[string]string{
	GeneroMasculino: fhirmodels.GenderMale,
	GeneroFemenino:  fhirmodels.GenderFemale,
	GeneroOtro:      fhirmodels.GenderOther,
}

var generoFromFHIR = map[string]string{
	fhirmodels.GenderMale:    GeneroMasculino,
	fhirmodels.GenderFemale:  GeneroFemenino,
	fhirmodels.GenderOther:   GeneroOtro,
	fhirmodels.GenderUnknown: GeneroOtro,
}

// GenderToFHIR maps an internal gender label to the FHIR administrative
// gender code. Anything outside the closed set maps to "unknown".
func GenderToFHIR(genero string) string {
	if g, ok := generoToFHIR[genero]; ok {
		return g
	}
	return fhirmodels.GenderUnknown
}

// GenderFromFHIR is the inverse mapping. It is not bijective: "unknown" and
// unrecognized codes both come back as "Otro".
func GenderFromFHIR(gender string) string {
	if g, ok := generoFromFHIR[gender]; ok {
		return g
	}
	return GeneroOtro
}

// FullName returns the display form "given family".
func (p *Patient) FullName() string {
	return p.GivenName + " " + p.FamilyName
}

// FHIRID returns the deterministic exported resource id ("patient-7").
func (p *Patient) FHIRID() string {
	return fhir.LocalID("patient", p.ID)
}

func (p *Patient) ToFHIR() map[string]interface{} {
	result := map[string]interface{}{
		"resourceType": "Patient",
		"id":           p.FHIRID(),
		"identifier": []fhir.Identifier{
			{System: fhir.IdentifierSystem, Value: p.Identification},
		},
		"name": []fhir.HumanName{
			{Use: "official", Family: p.FamilyName, Given: []string{p.GivenName}},
		},
		"gender": GenderToFHIR(p.Gender),
		"active": true,
	}

	var telecom []fhir.ContactPoint
	if p.Phone != "" {
		telecom = append(telecom, fhir.ContactPoint{System: "phone", Value: p.Phone, Use: "mobile"})
	}
	if p.Email != "" {
		telecom = append(telecom, fhir.ContactPoint{System: "email", Value: p.Email})
	}
	if len(telecom) > 0 {
		result["telecom"] = telecom
	}

	if p.Address != "" {
		result["address"] = []fhir.Address{{Use: "home", Text: p.Address}}
	}
	if p.BirthDate != nil {
		result["birthDate"] = fhir.FormatDate(*p.BirthDate)
	}

	return result
}
