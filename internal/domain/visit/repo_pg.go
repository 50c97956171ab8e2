package visit

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

const visitCols = `id, paciente_id, fecha, motivo, signos_vitales, sintomas,
	diagnostico, tratamiento, observaciones, medico`

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO consultas (paciente_id, fecha, motivo, signos_vitales, sintomas, diagnostico, tratamiento, observaciones, medico)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id`,
		v.PatientID, v.Date, v.Reason, v.VitalSigns, v.Symptoms,
		v.Diagnosis, v.Treatment, v.Notes, v.Clinician,
	).Scan(&v.ID)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Visit, error) {
	return scanVisit(r.pool.QueryRow(ctx,
		`SELECT `+visitCols+` FROM consultas WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, v *Visit) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE consultas SET
			fecha=$2, motivo=$3, signos_vitales=$4, sintomas=$5,
			diagnostico=$6, tratamiento=$7, observaciones=$8, medico=$9
		WHERE id = $1`,
		v.ID, v.Date, v.Reason, v.VitalSigns, v.Symptoms,
		v.Diagnosis, v.Treatment, v.Notes, v.Clinician,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM consultas WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Visit, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM consultas`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+visitCols+` FROM consultas ORDER BY fecha DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectVisits(rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Visit, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM consultas WHERE paciente_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+visitCols+` FROM consultas WHERE paciente_id = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectVisits(rows, total)
}

func (r *repoPG) AllByPatient(ctx context.Context, patientID int64) ([]*Visit, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+visitCols+` FROM consultas WHERE paciente_id = $1 ORDER BY fecha DESC`,
		patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	visits, _, err := collectVisits(rows, 0)
	return visits, err
}

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	err := row.Scan(
		&v.ID, &v.PatientID, &v.Date, &v.Reason, &v.VitalSigns, &v.Symptoms,
		&v.Diagnosis, &v.Treatment, &v.Notes, &v.Clinician,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func collectVisits(rows pgx.Rows, total int) ([]*Visit, int, error) {
	var visits []*Visit
	for rows.Next() {
		var v Visit
		err := rows.Scan(
			&v.ID, &v.PatientID, &v.Date, &v.Reason, &v.VitalSigns, &v.Symptoms,
			&v.Diagnosis, &v.Treatment, &v.Notes, &v.Clinician,
		)
		if err != nil {
			return nil, 0, err
		}
		visits = append(visits, &v)
	}
	return visits, total, nil
}
