package patient

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

const patientCols = `id, identificacion, nombre, apellidos, fecha_nacimiento, genero,
	telefono, email, direccion, creado_en`

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO pacientes (identificacion, nombre, apellidos, fecha_nacimiento, genero, telefono, email, direccion)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, creado_en`,
		p.Identification, p.GivenName, p.FamilyName, p.BirthDate, p.Gender,
		p.Phone, p.Email, p.Address,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM pacientes WHERE id = $1`, id))
}

func (r *repoPG) GetByIdentification(ctx context.Context, identification string) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM pacientes WHERE identificacion = $1`, identification))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE pacientes SET
			identificacion=$2, nombre=$3, apellidos=$4, fecha_nacimiento=$5,
			genero=$6, telefono=$7, email=$8, direccion=$9
		WHERE id = $1`,
		p.ID, p.Identification, p.GivenName, p.FamilyName, p.BirthDate,
		p.Gender, p.Phone, p.Email, p.Address,
	)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM pacientes WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM pacientes`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+patientCols+` FROM pacientes ORDER BY apellidos, nombre LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectPatients(rows, total)
}

func (r *repoPG) Search(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error) {
	pattern := "%" + term + "%"
	where := `WHERE identificacion ILIKE $1 OR nombre ILIKE $1 OR apellidos ILIKE $1`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM pacientes `+where, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+patientCols+` FROM pacientes `+where+` ORDER BY apellidos, nombre LIMIT $2 OFFSET $3`,
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return collectPatients(rows, total)
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID, &p.Identification, &p.GivenName, &p.FamilyName, &p.BirthDate,
		&p.Gender, &p.Phone, &p.Email, &p.Address, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPatients(rows pgx.Rows, total int) ([]*Patient, int, error) {
	var patients []*Patient
	for rows.Next() {
		var p Patient
		err := rows.Scan(
			&p.ID, &p.Identification, &p.GivenName, &p.FamilyName, &p.BirthDate,
			&p.Gender, &p.Phone, &p.Email, &p.Address, &p.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, &p)
	}
	return patients, total, nil
}
