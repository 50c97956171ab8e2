package prescription

import (
	"encoding/json"
	"testing"
)

func TestMarshalJSON_NumberedSlots(t *testing.T) {
	raw, err := json.Marshal(testPrescription())
	if err != nil {
		t.Fatal(err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatal(err)
	}

	if fields["medicamento1_nombre"] != "ibuprofeno" || fields["medicamento1_via"] != "Oral" {
		t.Errorf("slot 1 = %v / %v", fields["medicamento1_nombre"], fields["medicamento1_via"])
	}

	// Empty slots are nulls, never omitted.
	for _, key := range []string{"medicamento2_nombre", "medicamento5_via"} {
		v, present := fields[key]
		if !present {
			t.Errorf("%s missing from wire shape", key)
		}
		if v != nil {
			t.Errorf("%s = %v, want null", key, v)
		}
	}
}

func TestUnmarshalJSON_RoundTrip(t *testing.T) {
	original := testPrescription()
	original.Drugs[2] = &Drug{Name: "omeprazol", Dose: "20mg", Frequency: "cada 24 horas", Duration: "14 días", Route: "Oral"}

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Prescription
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}

	if decoded.PatientID != original.PatientID || !decoded.Active {
		t.Errorf("head fields = %+v", decoded)
	}
	if decoded.Drugs[1] != nil || decoded.Drugs[4] != nil {
		t.Error("empty slots should decode to nil")
	}
	if decoded.Drugs[2] == nil || *decoded.Drugs[2] != *original.Drugs[2] {
		t.Errorf("slot 3 = %+v", decoded.Drugs[2])
	}
}

func TestUnmarshalJSON_ActiveDefaultsTrue(t *testing.T) {
	var p Prescription
	body := `{"paciente_id": 7, "medicamento1_nombre": "ibuprofeno"}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatal(err)
	}
	if !p.Active {
		t.Error("payload without activa should decode as active")
	}

	body = `{"paciente_id": 7, "activa": false, "medicamento1_nombre": "ibuprofeno"}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatal(err)
	}
	if p.Active {
		t.Error("explicit activa=false ignored")
	}
}
