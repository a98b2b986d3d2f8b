package mocks

import (
	"context"

	"clinicapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockWaitingRoomRepository struct {
	mock.Mock
}

func (m *MockWaitingRoomRepository) HasActive(ctx context.Context, patientID int64) (bool, error) {
	args := m.Called(ctx, patientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWaitingRoomRepository) Add(ctx context.Context, e *model.WaitingRoomEntry) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWaitingRoomRepository) ListActive(ctx context.Context, userID int64) ([]model.WaitingRoomEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WaitingRoomEntry), args.Error(1)
}

func (m *MockWaitingRoomRepository) UpdateStatus(ctx context.Context, userID, id int64, status, callTimestamp string) error {
	args := m.Called(ctx, userID, id, status, callTimestamp)
	return args.Error(0)
}

func (m *MockWaitingRoomRepository) Delete(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
