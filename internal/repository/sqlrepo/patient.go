package sqlrepo

import (
	"context"
	"database/sql"

	"clinicapi/internal/model"
	"clinicapi/internal/repository"
)

type PatientRepo struct {
	db *sql.DB
}

func NewPatientRepo(db *sql.DB) *PatientRepo {
	return &PatientRepo{db: db}
}

var _ repository.PatientRepository = (*PatientRepo)(nil)

const patientColumns = `id, user_id, creation_date, name, sex, date_of_birth, phone, address,
	personal_medical_history, familial_medical_history, current_medical_conditions,
	current_medications, allergies, surgeries, vaccines`

func scanPatient(s scanner, p *model.Patient) error {
	return s.Scan(
		&p.ID,
		&p.UserID,
		&p.CreationDate,
		&p.Name,
		&p.Sex,
		&p.DateOfBirth,
		&p.Phone,
		&p.Address,
		&p.PersonalMedicalHistory,
		&p.FamilialMedicalHistory,
		&p.CurrentMedicalConditions,
		&p.CurrentMedications,
		&p.Allergies,
		&p.Surgeries,
		&p.Vaccines,
	)
}

// List returns the user's patients sorted by name, case-insensitively.
func (r *PatientRepo) List(ctx context.Context, userID int64) ([]model.Patient, error) {
	q := `SELECT ` + patientColumns + ` FROM patients WHERE user_id = $1 ORDER BY LOWER(name) ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Patient, 0)
	for rows.Next() {
		var p model.Patient
		if err := scanPatient(rows, &p); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PatientRepo) FindByID(ctx context.Context, userID, id int64) (*model.Patient, error) {
	q := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1 AND user_id = $2`
	var p model.Patient
	if err := scanPatient(r.db.QueryRowContext(ctx, q, id, userID), &p); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *PatientRepo) FindByName(ctx context.Context, userID int64, name string) (*model.Patient, error) {
	q := `SELECT ` + patientColumns + ` FROM patients WHERE name = $1 AND user_id = $2`
	var p model.Patient
	if err := scanPatient(r.db.QueryRowContext(ctx, q, name, userID), &p); err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *PatientRepo) Create(ctx context.Context, p *model.Patient) (int64, error) {
	const q = `
		INSERT INTO patients (user_id, creation_date, name, sex, date_of_birth, phone, address,
			personal_medical_history, familial_medical_history, current_medical_conditions,
			current_medications, allergies, surgeries, vaccines)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		p.UserID,
		p.CreationDate,
		p.Name,
		p.Sex,
		p.DateOfBirth,
		p.Phone,
		p.Address,
		p.PersonalMedicalHistory,
		p.FamilialMedicalHistory,
		p.CurrentMedicalConditions,
		p.CurrentMedications,
		p.Allergies,
		p.Surgeries,
		p.Vaccines,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

func (r *PatientRepo) Update(ctx context.Context, p *model.Patient) error {
	const q = `
		UPDATE patients SET creation_date = $1, name = $2, sex = $3, date_of_birth = $4, phone = $5,
			address = $6, personal_medical_history = $7, familial_medical_history = $8,
			current_medical_conditions = $9, current_medications = $10, allergies = $11,
			surgeries = $12, vaccines = $13
		WHERE id = $14 AND user_id = $15
	`
	res, err := r.db.ExecContext(ctx, q,
		p.CreationDate,
		p.Name,
		p.Sex,
		p.DateOfBirth,
		p.Phone,
		p.Address,
		p.PersonalMedicalHistory,
		p.FamilialMedicalHistory,
		p.CurrentMedicalConditions,
		p.CurrentMedications,
		p.Allergies,
		p.Surgeries,
		p.Vaccines,
		p.ID,
		p.UserID,
	)
	if err != nil {
		return mapError(err)
	}
	return affected(res)
}

func (r *PatientRepo) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return affected(res)
}
