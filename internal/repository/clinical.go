package repository

import (
	"context"

	"clinicapi/internal/model"
)

type VisitRepository interface {
	Create(ctx context.Context, v *model.Visit) (int64, error)
	ListByPatient(ctx context.Context, userID, patientID int64) ([]model.Visit, error)
}

type MedicationRepository interface {
	Create(ctx context.Context, m *model.Medication) (int64, error)
	ListByPatient(ctx context.Context, userID, patientID int64) ([]model.Medication, error)
	// Search matches medication names containing name, case-insensitively.
	Search(ctx context.Context, userID, patientID int64, name string) ([]model.Medication, error)
}

type LabTestRepository interface {
	Create(ctx context.Context, lt *model.LabTest) (int64, error)
	ListByPatient(ctx context.Context, userID, patientID int64) ([]model.LabTest, error)
	Search(ctx context.Context, userID, patientID int64, name string) ([]model.LabTest, error)
}
