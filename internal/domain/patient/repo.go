package patient

import "context"

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id int64) (*Patient, error)
	GetByIdentification(ctx context.Context, identification string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	Search(ctx context.Context, term string, limit, offset int) ([]*Patient, int, error)
}
