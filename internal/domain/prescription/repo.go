package prescription

import "context"

type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id int64) (*Prescription, error)
	Update(ctx context.Context, p *Prescription) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Prescription, int, error)
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Prescription, int, error)
}
