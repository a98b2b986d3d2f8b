package mocks

import (
	"context"

	"clinicapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) List(ctx context.Context, userID int64) ([]model.Patient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Patient), args.Error(1)
}

func (m *MockPatientService) GetByID(ctx context.Context, userID, id int64) (*model.Patient, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *MockPatientService) GetByName(ctx context.Context, userID int64, name string) (*model.Patient, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *MockPatientService) Create(ctx context.Context, userID int64, p model.Patient) (int64, error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPatientService) Update(ctx context.Context, userID, id int64, p model.Patient) error {
	args := m.Called(ctx, userID, id, p)
	return args.Error(0)
}

func (m *MockPatientService) Delete(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
