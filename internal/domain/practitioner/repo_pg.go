package practitioner

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

const practitionerCols = `id, nombre, codigo, especialidad, telefono, email, creado_en`

func (r *repoPG) Create(ctx context.Context, p *Practitioner) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO medicos (nombre, codigo, especialidad, telefono, email)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, creado_en`,
		p.Name, p.Code, p.Specialty, p.Phone, p.Email,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Practitioner, error) {
	return scanPractitioner(r.pool.QueryRow(ctx,
		`SELECT `+practitionerCols+` FROM medicos WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, p *Practitioner) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE medicos SET nombre=$2, codigo=$3, especialidad=$4, telefono=$5, email=$6
		WHERE id = $1`,
		p.ID, p.Name, p.Code, p.Specialty, p.Phone, p.Email,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM medicos WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Practitioner, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM medicos`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+practitionerCols+` FROM medicos ORDER BY nombre LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*Practitioner
	for rows.Next() {
		var p Practitioner
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Specialty, &p.Phone, &p.Email, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &p)
	}
	return out, total, nil
}

func scanPractitioner(row pgx.Row) (*Practitioner, error) {
	var p Practitioner
	err := row.Scan(&p.ID, &p.Name, &p.Code, &p.Specialty, &p.Phone, &p.Email, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
