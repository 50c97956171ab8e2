package laborder

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Create(ctx context.Context, o *LabOrder) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO ordenes_laboratorio (paciente_id, medico_id, consulta_id, fecha, indicacion, diagnostico_presuntivo, urgente, estado)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id`,
		o.PatientID, o.PractitionerID, o.VisitID, o.Date, o.Indication, o.PresumptiveDiagnosis, o.Urgent, o.Status,
	).Scan(&o.ID)
	if err != nil {
		return err
	}

	if err := insertExams(ctx, tx, o); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertExams(ctx context.Context, tx pgx.Tx, o *LabOrder) error {
	for _, pe := range o.PopulatedExams() {
		_, err := tx.Exec(ctx, `
			INSERT INTO orden_examenes (orden_id, slot, codigo, nombre, resultado, rango_referencia, unidad)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			o.ID, pe.Slot, pe.Exam.Code, pe.Exam.Name, pe.Exam.Result, pe.Exam.ReferenceRange, pe.Exam.Unit,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*LabOrder, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, `
		SELECT id, paciente_id, medico_id, consulta_id, fecha, indicacion, diagnostico_presuntivo, urgente, estado
		FROM ordenes_laboratorio WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadExams(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repoPG) loadExams(ctx context.Context, o *LabOrder) error {
	rows, err := r.pool.Query(ctx, `
		SELECT slot, codigo, nombre, resultado, rango_referencia, unidad
		FROM orden_examenes WHERE orden_id = $1 ORDER BY slot`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var slot int
		var e Exam
		if err := rows.Scan(&slot, &e.Code, &e.Name, &e.Result, &e.ReferenceRange, &e.Unit); err != nil {
			return err
		}
		if slot >= 1 && slot <= MaxExams {
			o.Exams[slot-1] = &e
		}
	}
	return rows.Err()
}

func (r *repoPG) Update(ctx context.Context, o *LabOrder) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE ordenes_laboratorio SET medico_id=$2, consulta_id=$3, fecha=$4, indicacion=$5, diagnostico_presuntivo=$6, urgente=$7, estado=$8
		WHERE id = $1`,
		o.ID, o.PractitionerID, o.VisitID, o.Date, o.Indication, o.PresumptiveDiagnosis, o.Urgent, o.Status,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM orden_examenes WHERE orden_id = $1`, o.ID); err != nil {
		return err
	}
	if err := insertExams(ctx, tx, o); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM ordenes_laboratorio WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*LabOrder, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ordenes_laboratorio`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, paciente_id, medico_id, consulta_id, fecha, indicacion, diagnostico_presuntivo, urgente, estado
		FROM ordenes_laboratorio ORDER BY fecha DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return r.collect(ctx, rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*LabOrder, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ordenes_laboratorio WHERE paciente_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, paciente_id, medico_id, consulta_id, fecha, indicacion, diagnostico_presuntivo, urgente, estado
		FROM ordenes_laboratorio WHERE paciente_id = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return r.collect(ctx, rows, total)
}

func (r *repoPG) collect(ctx context.Context, rows pgx.Rows, total int) ([]*LabOrder, int, error) {
	var orders []*LabOrder
	for rows.Next() {
		var o LabOrder
		if err := rows.Scan(&o.ID, &o.PatientID, &o.PractitionerID, &o.VisitID, &o.Date, &o.Indication, &o.PresumptiveDiagnosis, &o.Urgent, &o.Status); err != nil {
			rows.Close()
			return nil, 0, err
		}
		orders = append(orders, &o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, o := range orders {
		if err := r.loadExams(ctx, o); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

func scanOrder(row pgx.Row) (*LabOrder, error) {
	var o LabOrder
	err := row.Scan(&o.ID, &o.PatientID, &o.PractitionerID, &o.VisitID, &o.Date, &o.Indication, &o.PresumptiveDiagnosis, &o.Urgent, &o.Status)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
