package mocks

import (
	"context"

	"clinicapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockMobileUploadService struct {
	mock.Mock
}

func (m *MockMobileUploadService) CreateSession(ctx context.Context, userID, patientID int64) (string, error) {
	args := m.Called(ctx, userID, patientID)
	return args.String(0), args.Error(1)
}

func (m *MockMobileUploadService) SessionPatient(ctx context.Context, userID int64, token string) (int64, error) {
	args := m.Called(ctx, userID, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMobileUploadService) HandleUpload(ctx context.Context, token string, files []service.UploadFile) (int, error) {
	args := m.Called(ctx, token, files)
	return args.Int(0), args.Error(1)
}
