package prescription

import (
	"encoding/json"
	"fmt"
	"time"
)

// The REST surface keeps the clinic's historical flat-table shape: each drug
// slot is a numbered field group (medicamento1_nombre, medicamento1_dosis,
// ...). Empty slots are serialized as nulls, not omitted.

var drugFields = []string{"nombre", "dosis", "frecuencia", "duracion", "via"}

func (p Prescription) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"id":           p.ID,
		"paciente_id":  p.PatientID,
		"medico_id":    p.PractitionerID,
		"fecha":        p.Date,
		"indicaciones": p.Instructions,
		"activa":       p.Active,
	}
	for i, d := range p.Drugs {
		prefix := fmt.Sprintf("medicamento%d_", i+1)
		if d == nil || d.Name == "" {
			for _, f := range drugFields {
				out[prefix+f] = nil
			}
			continue
		}
		out[prefix+"nombre"] = d.Name
		out[prefix+"dosis"] = d.Dose
		out[prefix+"frecuencia"] = d.Frequency
		out[prefix+"duracion"] = d.Duration
		out[prefix+"via"] = d.Route
	}
	return json.Marshal(out)
}

func (p *Prescription) UnmarshalJSON(data []byte) error {
	var head struct {
		ID             int64      `json:"id"`
		PatientID      int64      `json:"paciente_id"`
		PractitionerID *int64     `json:"medico_id"`
		Date           *time.Time `json:"fecha"`
		Instructions   string     `json:"indicaciones"`
		Active         *bool      `json:"activa"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	p.ID = head.ID
	p.PatientID = head.PatientID
	p.PractitionerID = head.PractitionerID
	p.Instructions = head.Instructions
	if head.Date != nil {
		p.Date = *head.Date
	} else {
		p.Date = time.Time{}
	}
	// A payload that says nothing about the flag means an active
	// prescription, so partial create bodies behave sensibly.
	p.Active = head.Active == nil || *head.Active

	for i := 0; i < MaxDrugs; i++ {
		prefix := fmt.Sprintf("medicamento%d_", i+1)
		name := wireStr(fields, prefix+"nombre")
		if name == "" {
			p.Drugs[i] = nil
			continue
		}
		p.Drugs[i] = &Drug{
			Name:      name,
			Dose:      wireStr(fields, prefix+"dosis"),
			Frequency: wireStr(fields, prefix+"frecuencia"),
			Duration:  wireStr(fields, prefix+"duracion"),
			Route:     wireStr(fields, prefix+"via"),
		}
	}
	return nil
}

func wireStr(fields map[string]interface{}, key string) string {
	s, _ := fields[key].(string)
	return s
}
