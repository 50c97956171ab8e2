package user

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

const userCols = `id, usuario, nombre, password_hash, roles, activo, creado_en`

func (r *repoPG) Create(ctx context.Context, u *User) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO usuarios (usuario, nombre, password_hash, roles, activo)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, creado_en`,
		u.Username, u.Name, u.PasswordHash, u.Roles, u.Active,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id int64) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM usuarios WHERE id = $1`, id))
}

func (r *repoPG) GetByUsername(ctx context.Context, username string) (*User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM usuarios WHERE usuario = $1`, username))
}

func (r *repoPG) Update(ctx context.Context, u *User) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE usuarios SET nombre=$2, password_hash=$3, roles=$4, activo=$5
		WHERE id = $1`,
		u.ID, u.Name, u.PasswordHash, u.Roles, u.Active,
	)
	return err
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM usuarios ORDER BY usuario LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.Roles, &u.Active, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, &u)
	}
	return users, total, rows.Err()
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash, &u.Roles, &u.Active, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
