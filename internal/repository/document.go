package repository

import (
	"context"

	"clinicapi/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// Persistence only; no business rules.
type DocumentRepository interface {
	// Create inserts a new document record and returns it with its generated ID.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindForPatient returns a document only if it belongs to the patient, ErrNotFound otherwise.
	FindForPatient(ctx context.Context, patientID, documentID int64) (*model.Document, error)

	// ListByPatient returns a patient's documents, newest first.
	ListByPatient(ctx context.Context, patientID int64) ([]model.Document, error)

	// Delete removes a document by ID. ErrNotFound when no row was deleted.
	Delete(ctx context.Context, id int64) error
}
