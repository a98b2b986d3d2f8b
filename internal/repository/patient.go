package repository

import (
	"context"

	"clinicapi/internal/model"
)

// PatientRepository scopes every query to the owning user.
type PatientRepository interface {
	List(ctx context.Context, userID int64) ([]model.Patient, error)
	FindByID(ctx context.Context, userID, id int64) (*model.Patient, error)
	FindByName(ctx context.Context, userID int64, name string) (*model.Patient, error)
	// Create returns ErrDuplicate when the user already has a patient with that name.
	Create(ctx context.Context, p *model.Patient) (int64, error)
	// Update matches on p.ID and p.UserID. ErrNotFound when no row changed.
	Update(ctx context.Context, p *model.Patient) error
	// Delete cascades to the patient's clinical rows, documents and queue entries.
	Delete(ctx context.Context, userID, id int64) error
}
