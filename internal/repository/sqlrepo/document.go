package sqlrepo

import (
	"context"
	"database/sql"

	"clinicapi/internal/model"
	"clinicapi/internal/repository"
)

// DocumentRepo is a database/sql implementation of repository.DocumentRepository.
// It uses parameterized queries and contains no business logic.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo repository.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// Create inserts a new document row and returns the stored record.
func (r *DocumentRepo) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (patient_id, document_name, document_path, upload_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, patient_id, document_name, document_path, upload_date
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.PatientID,
		doc.Name,
		doc.Path,
		doc.UploadDate,
	)
	var out model.Document
	if err := scanDocument(row, &out); err != nil {
		return nil, mapError(err)
	}
	return &out, nil
}

// FindForPatient fetches a single document scoped to its patient.
func (r *DocumentRepo) FindForPatient(ctx context.Context, patientID, documentID int64) (*model.Document, error) {
	const q = `
		SELECT id, patient_id, document_name, document_path, upload_date
		FROM documents
		WHERE id = $1 AND patient_id = $2
	`
	var d model.Document
	if err := scanDocument(r.db.QueryRowContext(ctx, q, documentID, patientID), &d); err != nil {
		return nil, mapError(err)
	}
	return &d, nil
}

// ListByPatient returns the patient's documents, newest first.
func (r *DocumentRepo) ListByPatient(ctx context.Context, patientID int64) ([]model.Document, error) {
	const q = `
		SELECT id, patient_id, document_name, document_path, upload_date
		FROM documents
		WHERE patient_id = $1
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := scanDocument(rows, &d); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes a document by ID.
func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner, d *model.Document) error {
	return s.Scan(&d.ID, &d.PatientID, &d.Name, &d.Path, &d.UploadDate)
}
