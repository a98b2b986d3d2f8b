package sqlrepo

import (
	"context"
	"database/sql"

	"clinicapi/internal/model"
	"clinicapi/internal/repository"
)

// VisitRepo, MedicationRepo and LabTestRepo share the same shape:
// insert returning id, and per-patient listings scoped to the user, newest first.

type VisitRepo struct {
	db *sql.DB
}

func NewVisitRepo(db *sql.DB) *VisitRepo {
	return &VisitRepo{db: db}
}

var _ repository.VisitRepository = (*VisitRepo)(nil)

func (r *VisitRepo) Create(ctx context.Context, v *model.Visit) (int64, error) {
	const q = `
		INSERT INTO visits (patient_id, user_id, visit_reason, visit_weight, visit_weight_percentile,
			visit_height, visit_height_percentile, visit_head_circumference,
			visit_head_circumference_percentile, visit_bmi, visit_physical_examination,
			visit_diagnosis, visit_date, visit_hour)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		v.PatientID,
		v.UserID,
		v.Reason,
		v.Weight,
		v.WeightPercentile,
		v.Height,
		v.HeightPercentile,
		v.HeadCircumference,
		v.HeadCircumferencePercentile,
		v.BMI,
		v.PhysicalExamination,
		v.Diagnosis,
		v.Date,
		v.Hour,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

func (r *VisitRepo) ListByPatient(ctx context.Context, userID, patientID int64) ([]model.Visit, error) {
	const q = `
		SELECT id, patient_id, user_id, visit_reason, visit_weight, visit_weight_percentile,
			visit_height, visit_height_percentile, visit_head_circumference,
			visit_head_circumference_percentile, visit_bmi, visit_physical_examination,
			visit_diagnosis, visit_date, visit_hour
		FROM visits
		WHERE patient_id = $1 AND user_id = $2
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, patientID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Visit, 0)
	for rows.Next() {
		var v model.Visit
		if err := rows.Scan(
			&v.ID,
			&v.PatientID,
			&v.UserID,
			&v.Reason,
			&v.Weight,
			&v.WeightPercentile,
			&v.Height,
			&v.HeightPercentile,
			&v.HeadCircumference,
			&v.HeadCircumferencePercentile,
			&v.BMI,
			&v.PhysicalExamination,
			&v.Diagnosis,
			&v.Date,
			&v.Hour,
		); err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	return items, rows.Err()
}

type MedicationRepo struct {
	db *sql.DB
}

func NewMedicationRepo(db *sql.DB) *MedicationRepo {
	return &MedicationRepo{db: db}
}

var _ repository.MedicationRepository = (*MedicationRepo)(nil)

const medicationSelect = `
	SELECT id, patient_id, user_id, medication_name, medication_date, medication_duration,
		dosage_form, times_per_day, amount
	FROM medications
	WHERE patient_id = $1 AND user_id = $2`

func (r *MedicationRepo) Create(ctx context.Context, m *model.Medication) (int64, error) {
	const q = `
		INSERT INTO medications (patient_id, user_id, medication_name, medication_date,
			medication_duration, dosage_form, times_per_day, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, q,
		m.PatientID, m.UserID, m.Name, m.Date, m.Duration, m.DosageForm, m.TimesPerDay, m.Amount,
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

func (r *MedicationRepo) ListByPatient(ctx context.Context, userID, patientID int64) ([]model.Medication, error) {
	return r.query(ctx, medicationSelect+` ORDER BY id DESC`, patientID, userID)
}

func (r *MedicationRepo) Search(ctx context.Context, userID, patientID int64, name string) ([]model.Medication, error) {
	q := medicationSelect + ` AND LOWER(medication_name) LIKE LOWER($3) ESCAPE '\' ORDER BY id DESC`
	return r.query(ctx, q, patientID, userID, likePattern(name))
}

func (r *MedicationRepo) query(ctx context.Context, q string, args ...any) ([]model.Medication, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Medication, 0)
	for rows.Next() {
		var m model.Medication
		if err := rows.Scan(&m.ID, &m.PatientID, &m.UserID, &m.Name, &m.Date, &m.Duration, &m.DosageForm, &m.TimesPerDay, &m.Amount); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

type LabTestRepo struct {
	db *sql.DB
}

func NewLabTestRepo(db *sql.DB) *LabTestRepo {
	return &LabTestRepo{db: db}
}

var _ repository.LabTestRepository = (*LabTestRepo)(nil)

const labTestSelect = `
	SELECT id, patient_id, user_id, lab_test_name, lab_test_date
	FROM lab_tests
	WHERE patient_id = $1 AND user_id = $2`

func (r *LabTestRepo) Create(ctx context.Context, lt *model.LabTest) (int64, error) {
	const q = `
		INSERT INTO lab_tests (patient_id, user_id, lab_test_name, lab_test_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, lt.PatientID, lt.UserID, lt.Name, lt.Date).Scan(&id); err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

func (r *LabTestRepo) ListByPatient(ctx context.Context, userID, patientID int64) ([]model.LabTest, error) {
	return r.query(ctx, labTestSelect+` ORDER BY id DESC`, patientID, userID)
}

func (r *LabTestRepo) Search(ctx context.Context, userID, patientID int64, name string) ([]model.LabTest, error) {
	q := labTestSelect + ` AND LOWER(lab_test_name) LIKE LOWER($3) ESCAPE '\' ORDER BY id DESC`
	return r.query(ctx, q, patientID, userID, likePattern(name))
}

func (r *LabTestRepo) query(ctx context.Context, q string, args ...any) ([]model.LabTest, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.LabTest, 0)
	for rows.Next() {
		var lt model.LabTest
		if err := rows.Scan(&lt.ID, &lt.PatientID, &lt.UserID, &lt.Name, &lt.Date); err != nil {
			return nil, err
		}
		items = append(items, lt)
	}
	return items, rows.Err()
}
