package appointment

import "context"

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id int64) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
	ListByPatient(ctx context.Context, patientID int64, limit, offset int) ([]*Appointment, int, error)
	ListByPractitioner(ctx context.Context, practitionerID int64, limit, offset int) ([]*Appointment, int, error)
}
