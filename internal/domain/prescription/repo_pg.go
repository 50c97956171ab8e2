package prescription

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

func (r *repoPG) Create(ctx context.Context, p *Prescription) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO recetas (paciente_id, medico_id, fecha, indicaciones, activa)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id`,
		p.PatientID, p.PractitionerID, p.Date, p.Instructions, p.Active,
	).Scan(&p.ID)
	if err != nil {
		return err
	}

	if err := insertDrugs(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertDrugs(ctx context.Context, tx pgx.Tx, p *Prescription) error {
	for _, pd := range p.PopulatedDrugs() {
		_, err := tx.Exec(ctx, `
			INSERT INTO receta_medicamentos (receta_id, slot, nombre, dosis, frecuencia, duracion, via)
			VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			p.ID, pd.Slot, pd.Drug.Name, pd.Drug.Dose, pd.Drug.Frequency, pd.Drug.Duration, pd.Drug.Route,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Prescription, error) {
	p, err := scanPrescription(r.pool.QueryRow(ctx, `
		SELECT id, paciente_id, medico_id, fecha, indicaciones, activa
		FROM recetas WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadDrugs(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repoPG) loadDrugs(ctx context.Context, p *Prescription) error {
	rows, err := r.pool.Query(ctx, `
		SELECT slot, nombre, dosis, frecuencia, duracion, via
		FROM receta_medicamentos WHERE receta_id = $1 ORDER BY slot`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var slot int
		var d Drug
		if err := rows.Scan(&slot, &d.Name, &d.Dose, &d.Frequency, &d.Duration, &d.Route); err != nil {
			return err
		}
		if slot >= 1 && slot <= MaxDrugs {
			p.Drugs[slot-1] = &d
		}
	}
	return rows.Err()
}

func (r *repoPG) Update(ctx context.Context, p *Prescription) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		UPDATE recetas SET medico_id=$2, fecha=$3, indicaciones=$4, activa=$5
		WHERE id = $1`,
		p.ID, p.PractitionerID, p.Date, p.Instructions, p.Active,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM receta_medicamentos WHERE receta_id = $1`, p.ID); err != nil {
		return err
	}
	if err := insertDrugs(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM recetas WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Prescription, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM recetas`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, paciente_id, medico_id, fecha, indicaciones, activa
		FROM recetas ORDER BY fecha DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return r.collect(ctx, rows, total)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Prescription, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM recetas WHERE paciente_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, paciente_id, medico_id, fecha, indicaciones, activa
		FROM recetas WHERE paciente_id = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return r.collect(ctx, rows, total)
}

func (r *repoPG) collect(ctx context.Context, rows pgx.Rows, total int) ([]*Prescription, int, error) {
	var prescriptions []*Prescription
	for rows.Next() {
		var p Prescription
		if err := rows.Scan(&p.ID, &p.PatientID, &p.PractitionerID, &p.Date, &p.Instructions, &p.Active); err != nil {
			rows.Close()
			return nil, 0, err
		}
		prescriptions = append(prescriptions, &p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, p := range prescriptions {
		if err := r.loadDrugs(ctx, p); err != nil {
			return nil, 0, err
		}
	}
	return prescriptions, total, nil
}

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.PatientID, &p.PractitionerID, &p.Date, &p.Instructions, &p.Active)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
