package appointment

import "time"

// Appointment lifecycle states (wire values are Spanish like the rest of
// the REST surface).
const (
	StatusScheduled = "programada"
	StatusConfirmed = "confirmada"
	StatusCompleted = "completada"
	StatusCancelled = "cancelada"
)

// Appointment maps to the citas table. Scheduling is bookkeeping only;
// overlapping appointments are allowed and left to the front desk.
type Appointment struct {
	ID             int64     `db:"id" json:"id"`
	PatientID      int64     `db:"paciente_id" json:"paciente_id"`
	PractitionerID int64     `db:"medico_id" json:"medico_id"`
	Date           time.Time `db:"fecha" json:"fecha"`
	Reason         string    `db:"motivo" json:"motivo"`
	Status         string    `db:"estado" json:"estado"`
	Notes          string    `db:"notas" json:"notas"`
	CreatedAt      time.Time `db:"creado_en" json:"creado_en"`
}
