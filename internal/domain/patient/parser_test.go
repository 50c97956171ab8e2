package patient

import (
	"encoding/json"
	"testing"
)

// roundTrip marshals the built resource and decodes it back the way an
// inbound document would arrive.
func roundTrip(t *testing.T, p *Patient) Parsed {
	t.Helper()
	raw, err := json.Marshal(p.ToFHIR())
	if err != nil {
		t.Fatal(err)
	}
	var resource map[string]interface{}
	if err := json.Unmarshal(raw, &resource); err != nil {
		t.Fatal(err)
	}
	return ParseFHIR(resource)
}

func TestParseFHIR_RoundTrip(t *testing.T) {
	p := testPatient()
	parsed := roundTrip(t, p)

	if parsed.Identification != p.Identification {
		t.Errorf("identification = %q, want %q", parsed.Identification, p.Identification)
	}
	if parsed.GivenName != p.GivenName || parsed.FamilyName != p.FamilyName {
		t.Errorf("name = %q %q", parsed.GivenName, parsed.FamilyName)
	}
	if parsed.Gender != GeneroFemenino {
		t.Errorf("gender = %q, want Femenino", parsed.Gender)
	}
	if parsed.Phone != p.Phone || parsed.Email != p.Email {
		t.Errorf("contact = %q / %q", parsed.Phone, parsed.Email)
	}
	if parsed.Address != p.Address {
		t.Errorf("address = %q", parsed.Address)
	}
	if parsed.BirthDate != "1985-03-12" {
		t.Errorf("birthDate = %q, want 1985-03-12", parsed.BirthDate)
	}
}

func TestParseFHIR_UnknownGenderDefaultsToOtro(t *testing.T) {
	p := &Patient{ID: 1, Identification: "X", GivenName: "A", FamilyName: "B", Gender: "Desconocido"}
	parsed := roundTrip(t, p)
	if parsed.Gender != GeneroOtro {
		t.Errorf("gender = %q, want Otro", parsed.Gender)
	}
}

func TestParseFHIR_DegradesToEmpty(t *testing.T) {
	parsed := ParseFHIR(map[string]interface{}{"resourceType": "Patient"})
	if parsed.Identification != "" || parsed.GivenName != "" || parsed.FamilyName != "" ||
		parsed.Phone != "" || parsed.Email != "" || parsed.Address != "" || parsed.BirthDate != "" {
		t.Errorf("expected empty fields, got %+v", parsed)
	}
	if parsed.Gender != GeneroOtro {
		t.Errorf("missing gender should default to Otro, got %q", parsed.Gender)
	}
}

func TestParseFHIR_JoinsGivenNames(t *testing.T) {
	parsed := ParseFHIR(map[string]interface{}{
		"name": []interface{}{
			map[string]interface{}{
				"family": "Rojas",
				"given":  []interface{}{"Ana", "Lucía"},
			},
		},
	})
	if parsed.GivenName != "Ana Lucía" {
		t.Errorf("given = %q, want %q", parsed.GivenName, "Ana Lucía")
	}
}

func TestParseFHIR_FirstTelecomPerSystemWins(t *testing.T) {
	parsed := ParseFHIR(map[string]interface{}{
		"telecom": []interface{}{
			map[string]interface{}{"system": "phone", "value": "555-0001"},
			map[string]interface{}{"system": "phone", "value": "555-0002"},
			map[string]interface{}{"system": "email", "value": "a@example.com"},
		},
	})
	if parsed.Phone != "555-0001" {
		t.Errorf("phone = %q, want first entry", parsed.Phone)
	}
	if parsed.Email != "a@example.com" {
		t.Errorf("email = %q", parsed.Email)
	}
}

func TestParsedRecord_BirthDate(t *testing.T) {
	rec := Parsed{Identification: "X", BirthDate: "1990-06-01"}.Record()
	if rec.BirthDate == nil || rec.BirthDate.Format("2006-01-02") != "1990-06-01" {
		t.Errorf("birth date not parsed: %v", rec.BirthDate)
	}

	rec = Parsed{Identification: "X", BirthDate: "not-a-date"}.Record()
	if rec.BirthDate != nil {
		t.Error("unparsable birth date should stay nil")
	}
}
