package laborder

import (
	"encoding/json"
	"fmt"
	"time"
)

// Lab orders share the prescriptions' flat-table wire shape: each exam slot
// is a numbered field group (examen1_codigo, examen1_nombre, ...), empty
// slots serialized as nulls.

var examFields = []string{"codigo", "nombre", "resultado", "rango_referencia", "unidad"}

func (o LabOrder) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"id":                    o.ID,
		"paciente_id":           o.PatientID,
		"medico_id":             o.PractitionerID,
		"consulta_id":           o.VisitID,
		"fecha":                 o.Date,
		"indicacion":            o.Indication,
		"diagnostico_presuntivo": o.PresumptiveDiagnosis,
		"urgente":               o.Urgent,
		"estado":                o.Status,
	}
	for i, e := range o.Exams {
		prefix := fmt.Sprintf("examen%d_", i+1)
		if e == nil || e.Name == "" {
			for _, f := range examFields {
				out[prefix+f] = nil
			}
			continue
		}
		out[prefix+"codigo"] = e.Code
		out[prefix+"nombre"] = e.Name
		out[prefix+"resultado"] = e.Result
		out[prefix+"rango_referencia"] = e.ReferenceRange
		out[prefix+"unidad"] = e.Unit
	}
	return json.Marshal(out)
}

func (o *LabOrder) UnmarshalJSON(data []byte) error {
	var head struct {
		ID                   int64      `json:"id"`
		PatientID            int64      `json:"paciente_id"`
		PractitionerID       *int64     `json:"medico_id"`
		VisitID              *int64     `json:"consulta_id"`
		Date                 *time.Time `json:"fecha"`
		Indication           string     `json:"indicacion"`
		PresumptiveDiagnosis string     `json:"diagnostico_presuntivo"`
		Urgent               bool       `json:"urgente"`
		Status               string     `json:"estado"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	o.ID = head.ID
	o.PatientID = head.PatientID
	o.PractitionerID = head.PractitionerID
	o.VisitID = head.VisitID
	o.Indication = head.Indication
	o.PresumptiveDiagnosis = head.PresumptiveDiagnosis
	o.Urgent = head.Urgent
	if head.Date != nil {
		o.Date = *head.Date
	} else {
		o.Date = time.Time{}
	}
	// A create body that says nothing about the status means a fresh order.
	o.Status = head.Status
	if o.Status == "" {
		o.Status = StatusPending
	}

	for i := 0; i < MaxExams; i++ {
		prefix := fmt.Sprintf("examen%d_", i+1)
		name := wireStr(fields, prefix+"nombre")
		if name == "" {
			o.Exams[i] = nil
			continue
		}
		o.Exams[i] = &Exam{
			Code:           wireStr(fields, prefix+"codigo"),
			Name:           name,
			Result:         wireStr(fields, prefix+"resultado"),
			ReferenceRange: wireStr(fields, prefix+"rango_referencia"),
			Unit:           wireStr(fields, prefix+"unidad"),
		}
	}
	return nil
}

func wireStr(fields map[string]interface{}, key string) string {
	s, _ := fields[key].(string)
	return s
}
