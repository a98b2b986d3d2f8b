package mocks

import (
	"context"

	"clinicapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) Create(ctx context.Context, v *model.Visit) (int64, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVisitRepository) ListByPatient(ctx context.Context, userID, patientID int64) ([]model.Visit, error) {
	args := m.Called(ctx, userID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Visit), args.Error(1)
}

type MockMedicationRepository struct {
	mock.Mock
}

func (m *MockMedicationRepository) Create(ctx context.Context, med *model.Medication) (int64, error) {
	args := m.Called(ctx, med)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMedicationRepository) ListByPatient(ctx context.Context, userID, patientID int64) ([]model.Medication, error) {
	args := m.Called(ctx, userID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Medication), args.Error(1)
}

func (m *MockMedicationRepository) Search(ctx context.Context, userID, patientID int64, name string) ([]model.Medication, error) {
	args := m.Called(ctx, userID, patientID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Medication), args.Error(1)
}

type MockLabTestRepository struct {
	mock.Mock
}

func (m *MockLabTestRepository) Create(ctx context.Context, lt *model.LabTest) (int64, error) {
	args := m.Called(ctx, lt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLabTestRepository) ListByPatient(ctx context.Context, userID, patientID int64) ([]model.LabTest, error) {
	args := m.Called(ctx, userID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LabTest), args.Error(1)
}

func (m *MockLabTestRepository) Search(ctx context.Context, userID, patientID int64, name string) ([]model.LabTest, error) {
	args := m.Called(ctx, userID, patientID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LabTest), args.Error(1)
}
