package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clinicapi/internal/model"
	"clinicapi/internal/repository"
)

// isoMillis matches the timestamps the front-end produces with toISOString.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// WaitingRoomService manages the clinic queue.
type WaitingRoomService interface {
	Add(ctx context.Context, userID, patientID int64) (*model.WaitingRoomEntry, error)
	List(ctx context.Context, userID int64) ([]model.WaitingRoomEntry, error)
	// UpdateStatus stamps the call time the first time an entry is called.
	UpdateStatus(ctx context.Context, userID, entryID int64, status string) error
	Remove(ctx context.Context, userID, entryID int64) error
}

type waitingRoomService struct {
	repo     repository.WaitingRoomRepository
	patients repository.PatientRepository
	now      func() time.Time
}

func NewWaitingRoomService(repo repository.WaitingRoomRepository, patients repository.PatientRepository) WaitingRoomService {
	return &waitingRoomService{repo: repo, patients: patients, now: time.Now}
}

func (s *waitingRoomService) timestamp() string {
	return s.now().UTC().Format(isoMillis)
}

func (s *waitingRoomService) Add(ctx context.Context, userID, patientID int64) (*model.WaitingRoomEntry, error) {
	if patientID <= 0 {
		return nil, fmt.Errorf("%w: patient_id required", ErrInvalidInput)
	}
	if err := ownPatient(ctx, s.patients, userID, patientID); err != nil {
		return nil, err
	}
	active, err := s.repo.HasActive(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrAlreadyWaiting
	}

	e := &model.WaitingRoomEntry{
		PatientID:        patientID,
		ArrivalTimestamp: s.timestamp(),
		Status:           model.StatusWaiting,
	}
	id, err := s.repo.Add(ctx, e)
	if err != nil {
		return nil, err
	}
	e.ID = id
	return e, nil
}

func (s *waitingRoomService) List(ctx context.Context, userID int64) ([]model.WaitingRoomEntry, error) {
	return s.repo.ListActive(ctx, userID)
}

func (s *waitingRoomService) UpdateStatus(ctx context.Context, userID, entryID int64, status string) error {
	if err := requireFields("status", status); err != nil {
		return err
	}
	if !model.ValidWaitingRoomStatus(status) {
		return fmt.Errorf("%w: status must be one of: %s", ErrInvalidInput, strings.Join(model.WaitingRoomStatuses, ", "))
	}
	called := ""
	if status == model.StatusCalled {
		called = s.timestamp()
	}
	if err := s.repo.UpdateStatus(ctx, userID, entryID, status, called); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}

func (s *waitingRoomService) Remove(ctx context.Context, userID, entryID int64) error {
	if err := s.repo.Delete(ctx, userID, entryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return nil
}
