package laborder

import "context"

type Repository interface {
	Create(ctx context.Context, o *LabOrder) error
	GetByID(ctx context.Context, id int64) (*LabOrder, error)
	Update(ctx context.Context, o *LabOrder) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*LabOrder, int, error)
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*LabOrder, int, error)
}
