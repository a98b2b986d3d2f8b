package mocks

import (
	"context"

	"clinicapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockWaitingRoomService struct {
	mock.Mock
}

func (m *MockWaitingRoomService) Add(ctx context.Context, userID, patientID int64) (*model.WaitingRoomEntry, error) {
	args := m.Called(ctx, userID, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WaitingRoomEntry), args.Error(1)
}

func (m *MockWaitingRoomService) List(ctx context.Context, userID int64) ([]model.WaitingRoomEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WaitingRoomEntry), args.Error(1)
}

func (m *MockWaitingRoomService) UpdateStatus(ctx context.Context, userID, entryID int64, status string) error {
	args := m.Called(ctx, userID, entryID, status)
	return args.Error(0)
}

func (m *MockWaitingRoomService) Remove(ctx context.Context, userID, entryID int64) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}
