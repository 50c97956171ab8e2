package practitioner

import "context"

type Repository interface {
	Create(ctx context.Context, p *Practitioner) error
	GetByID(ctx context.Context, id int64) (*Practitioner, error)
	Update(ctx context.Context, p *Practitioner) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Practitioner, int, error)
}
