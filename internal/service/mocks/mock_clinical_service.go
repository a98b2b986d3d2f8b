package mocks

import (
	"context"

	"clinicapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockClinicalService struct {
	mock.Mock
}

func (m *MockClinicalService) AddVisit(ctx context.Context, userID, patientID int64, v model.Visit) (int64, error) {
	args := m.Called(ctx, userID, patientID, v)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClinicalService) ListVisits(ctx context.Context, userID, patientID int64) ([]model.Visit, error) {
	args := m.Called(ctx, userID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Visit), args.Error(1)
}

func (m *MockClinicalService) AddMedication(ctx context.Context, userID, patientID int64, med model.Medication) (int64, error) {
	args := m.Called(ctx, userID, patientID, med)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClinicalService) ListMedications(ctx context.Context, userID, patientID int64) ([]model.Medication, error) {
	args := m.Called(ctx, userID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Medication), args.Error(1)
}

func (m *MockClinicalService) SearchMedications(ctx context.Context, userID, patientID int64, name string) ([]model.Medication, error) {
	args := m.Called(ctx, userID, patientID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Medication), args.Error(1)
}

func (m *MockClinicalService) AddLabTest(ctx context.Context, userID, patientID int64, lt model.LabTest) (int64, error) {
	args := m.Called(ctx, userID, patientID, lt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClinicalService) ListLabTests(ctx context.Context, userID, patientID int64) ([]model.LabTest, error) {
	args := m.Called(ctx, userID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LabTest), args.Error(1)
}

func (m *MockClinicalService) SearchLabTests(ctx context.Context, userID, patientID int64, name string) ([]model.LabTest, error) {
	args := m.Called(ctx, userID, patientID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.LabTest), args.Error(1)
}
