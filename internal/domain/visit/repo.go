package visit

import "context"

type Repository interface {
	Create(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, id int64) (*Visit, error)
	Update(ctx context.Context, v *Visit) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Visit, int, error)
	// ListByPatient returns the patient's visits in descending date order.
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Visit, int, error)
	// AllByPatient returns every visit of the patient, newest first.
	AllByPatient(ctx context.Context, patientID int64) ([]*Visit, error)
}
