package appointment

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const appointmentCols = `id, paciente_id, medico_id, fecha, motivo, estado, notas, creado_en`

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO citas (paciente_id, medico_id, fecha, motivo, estado, notas)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, creado_en`,
		a.PatientID, a.PractitionerID, a.Date, a.Reason, a.Status, a.Notes,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx,
		`SELECT `+appointmentCols+` FROM citas WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE citas SET medico_id=$2, fecha=$3, motivo=$4, estado=$5, notas=$6
		WHERE id = $1`,
		a.ID, a.PractitionerID, a.Date, a.Reason, a.Status, a.Notes,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM citas WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM citas`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+appointmentCols+` FROM citas ORDER BY fecha LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collectAppointments(rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM citas WHERE paciente_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+appointmentCols+` FROM citas WHERE paciente_id = $1 ORDER BY fecha LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collectAppointments(rows, total)
}

func (r *repoPG) ListByPractitioner(ctx context.Context, practitionerID int64, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM citas WHERE medico_id = $1`, practitionerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+appointmentCols+` FROM citas WHERE medico_id = $1 ORDER BY fecha LIMIT $2 OFFSET $3`,
		practitionerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return collectAppointments(rows, total)
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.PractitionerID, &a.Date, &a.Reason, &a.Status, &a.Notes, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAppointments(rows pgx.Rows, total int) ([]*Appointment, int, error) {
	defer rows.Close()
	var appointments []*Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.PatientID, &a.PractitionerID, &a.Date, &a.Reason, &a.Status, &a.Notes, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		appointments = append(appointments, &a)
	}
	return appointments, total, rows.Err()
}
