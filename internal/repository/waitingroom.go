package repository

import (
	"context"

	"clinicapi/internal/model"
)

type WaitingRoomRepository interface {
	// HasActive reports whether the patient has an entry that is not done.
	HasActive(ctx context.Context, patientID int64) (bool, error)
	Add(ctx context.Context, e *model.WaitingRoomEntry) (int64, error)
	// ListActive returns the user's active entries ordered by arrival.
	ListActive(ctx context.Context, userID int64) ([]model.WaitingRoomEntry, error)
	// UpdateStatus sets the status. A non-empty callTimestamp is stored only if none is set yet.
	UpdateStatus(ctx context.Context, userID, id int64, status, callTimestamp string) error
	Delete(ctx context.Context, userID, id int64) error
}
