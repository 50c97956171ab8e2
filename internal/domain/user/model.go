package user

import "time"

// User maps to the usuarios table. The password hash never leaves the
// server; the json tag strips it from every response.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"usuario" json:"usuario"`
	Name         string    `db:"nombre" json:"nombre"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Roles        []string  `db:"roles" json:"roles"`
	Active       bool      `db:"activo" json:"activo"`
	CreatedAt    time.Time `db:"creado_en" json:"creado_en"`
}
