package patient

import (
	"strings"
	"time"

	"github.com/ecemedico/ece/internal/platform/fhir"
)

// Parsed holds the flat record fields recovered from an inbound FHIR
// Patient. Missing or malformed source fields degrade to the empty string;
// parsing never fails.
type Parsed struct {
	Identification string `json:"identificacion"`
	GivenName      string `json:"nombre"`
	FamilyName     string `json:"apellidos"`
	BirthDate      string `json:"fecha_nacimiento"`
	Gender         string `json:"genero"`
	Phone          string `json:"telefono"`
	Email          string `json:"email"`
	Address        string `json:"direccion"`
}

// ParseFHIR extracts internal record fields from a decoded FHIR Patient
// resource. All given names are joined with a space; the first identifier,
// first address, and first telecom entry per system win.
func ParseFHIR(resource map[string]interface{}) Parsed {
	var p Parsed

	if name := fhir.FirstMap(resource, "name"); name != nil {
		var given []string
		for _, g := range fhir.Slice(name, "given") {
			if s, ok := g.(string); ok {
				given = append(given, s)
			}
		}
		p.GivenName = strings.Join(given, " ")
		p.FamilyName = fhir.Str(name, "family")
	}

	if ident := fhir.FirstMap(resource, "identifier"); ident != nil {
		p.Identification = fhir.Str(ident, "value")
	}

	for _, t := range fhir.Slice(resource, "telecom") {
		contact, ok := t.(map[string]interface{})
		if !ok {
			continue
		}
		switch fhir.Str(contact, "system") {
		case "phone":
			if p.Phone == "" {
				p.Phone = fhir.Str(contact, "value")
			}
		case "email":
			if p.Email == "" {
				p.Email = fhir.Str(contact, "value")
			}
		}
	}

	if addr := fhir.FirstMap(resource, "address"); addr != nil {
		p.Address = fhir.Str(addr, "text")
	}

	p.Gender = GenderFromFHIR(fhir.Str(resource, "gender"))
	p.BirthDate = fhir.Str(resource, "birthDate")

	return p
}

// Record converts the parsed fields into a persistable Patient. The birth
// date string is kept as a raw passthrough during parsing; here it is
// interpreted as a date-only value, left nil when it does not parse.
func (p Parsed) Record() *Patient {
	rec := &Patient{
		Identification: p.Identification,
		GivenName:      p.GivenName,
		FamilyName:     p.FamilyName,
		Gender:         p.Gender,
		Phone:          p.Phone,
		Email:          p.Email,
		Address:        p.Address,
	}
	if p.BirthDate != "" {
		if t, err := time.Parse("2006-01-02", p.BirthDate); err == nil {
			rec.BirthDate = &t
		} else if t, err := time.Parse(time.RFC3339, p.BirthDate); err == nil {
			rec.BirthDate = &t
		}
	}
	return rec
}
