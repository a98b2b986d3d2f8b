package mocks

import (
	"context"

	"clinicapi/internal/model"
	"clinicapi/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, userID, patientID int64, f service.UploadFile) (*model.Document, error) {
	args := m.Called(ctx, userID, patientID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, userID, patientID int64) ([]model.Document, error) {
	args := m.Called(ctx, userID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) Open(ctx context.Context, userID, patientID, documentID int64) (*service.DocumentFile, error) {
	args := m.Called(ctx, userID, patientID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentFile), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, userID, patientID, documentID int64) error {
	args := m.Called(ctx, userID, patientID, documentID)
	return args.Error(0)
}
