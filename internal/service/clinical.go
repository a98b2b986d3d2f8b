package service

import (
	"context"

	"clinicapi/internal/model"
	"clinicapi/internal/repository"
)

// ClinicalService records visits, medications and lab tests for a user's patients.
type ClinicalService interface {
	AddVisit(ctx context.Context, userID, patientID int64, v model.Visit) (int64, error)
	ListVisits(ctx context.Context, userID, patientID int64) ([]model.Visit, error)

	AddMedication(ctx context.Context, userID, patientID int64, m model.Medication) (int64, error)
	ListMedications(ctx context.Context, userID, patientID int64) ([]model.Medication, error)
	SearchMedications(ctx context.Context, userID, patientID int64, name string) ([]model.Medication, error)

	AddLabTest(ctx context.Context, userID, patientID int64, lt model.LabTest) (int64, error)
	ListLabTests(ctx context.Context, userID, patientID int64) ([]model.LabTest, error)
	SearchLabTests(ctx context.Context, userID, patientID int64, name string) ([]model.LabTest, error)
}

type clinicalService struct {
	patients    repository.PatientRepository
	visits      repository.VisitRepository
	medications repository.MedicationRepository
	labTests    repository.LabTestRepository
}

func NewClinicalService(
	patients repository.PatientRepository,
	visits repository.VisitRepository,
	medications repository.MedicationRepository,
	labTests repository.LabTestRepository,
) ClinicalService {
	return &clinicalService{patients: patients, visits: visits, medications: medications, labTests: labTests}
}

func (s *clinicalService) AddVisit(ctx context.Context, userID, patientID int64, v model.Visit) (int64, error) {
	if err := requireFields("visit_date", v.Date, "visit_hour", v.Hour, "visit_reason", v.Reason); err != nil {
		return 0, err
	}
	if err := ownPatient(ctx, s.patients, userID, patientID); err != nil {
		return 0, err
	}
	v.PatientID, v.UserID = patientID, userID
	return s.visits.Create(ctx, &v)
}

func (s *clinicalService) ListVisits(ctx context.Context, userID, patientID int64) ([]model.Visit, error) {
	if err := ownPatient(ctx, s.patients, userID, patientID); err != nil {
		return nil, err
	}
	return s.visits.ListByPatient(ctx, userID, patientID)
}

func (s *clinicalService) AddMedication(ctx context.Context, userID, patientID int64, m model.Medication) (int64, error) {
	if err := requireFields("medication_name", m.Name, "medication_date", m.Date); err != nil {
		return 0, err
	}
	if err := ownPatient(ctx, s.patients, userID, patientID); err != nil {
		return 0, err
	}
	m.PatientID, m.UserID = patientID, userID
	return s.medications.Create(ctx, &m)
}

func (s *clinicalService) ListMedications(ctx context.Context, userID, patientID int64) ([]model.Medication, error) {
	if err := ownPatient(ctx, s.patients, userID, patientID); err != nil {
		return nil, err
	}
	return s.medications.ListByPatient(ctx, userID, patientID)
}

// SearchMedications with an empty name lists everything.
func (s *clinicalService) SearchMedications(ctx context.Context, userID, patientID int64, name string) ([]model.Medication, error) {
	if err := ownPatient(ctx, s.patients, userID, patientID); err != nil {
		return nil, err
	}
	return s.medications.Search(ctx, userID, patientID, name)
}

func (s *clinicalService) AddLabTest(ctx context.Context, userID, patientID int64, lt model.LabTest) (int64, error) {
	if err := requireFields("lab_test_name", lt.Name, "lab_test_date", lt.Date); err != nil {
		return 0, err
	}
	if err := ownPatient(ctx, s.patients, userID, patientID); err != nil {
		return 0, err
	}
	lt.PatientID, lt.UserID = patientID, userID
	return s.labTests.Create(ctx, &lt)
}

func (s *clinicalService) ListLabTests(ctx context.Context, userID, patientID int64) ([]model.LabTest, error) {
	if err := ownPatient(ctx, s.patients, userID, patientID); err != nil {
		return nil, err
	}
	return s.labTests.ListByPatient(ctx, userID, patientID)
}

func (s *clinicalService) SearchLabTests(ctx context.Context, userID, patientID int64, name string) ([]model.LabTest, error) {
	if err := ownPatient(ctx, s.patients, userID, patientID); err != nil {
		return nil, err
	}
	return s.labTests.Search(ctx, userID, patientID, name)
}
