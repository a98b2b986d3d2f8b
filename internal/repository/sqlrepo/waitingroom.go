package sqlrepo

import (
	"context"
	"database/sql"

	"clinicapi/internal/model"
	"clinicapi/internal/repository"
)

type WaitingRoomRepo struct {
	db *sql.DB
}

func NewWaitingRoomRepo(db *sql.DB) *WaitingRoomRepo {
	return &WaitingRoomRepo{db: db}
}

var _ repository.WaitingRoomRepository = (*WaitingRoomRepo)(nil)

func (r *WaitingRoomRepo) HasActive(ctx context.Context, patientID int64) (bool, error) {
	const q = `SELECT COUNT(*) FROM waiting_room WHERE patient_id = $1 AND status <> $2`
	var n int
	if err := r.db.QueryRowContext(ctx, q, patientID, model.StatusDone).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *WaitingRoomRepo) Add(ctx context.Context, e *model.WaitingRoomEntry) (int64, error) {
	const q = `
		INSERT INTO waiting_room (patient_id, arrival_timestamp, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	var id int64
	if err := r.db.QueryRowContext(ctx, q, e.PatientID, e.ArrivalTimestamp, e.Status).Scan(&id); err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

func (r *WaitingRoomRepo) ListActive(ctx context.Context, userID int64) ([]model.WaitingRoomEntry, error) {
	const q = `
		SELECT wr.id, wr.patient_id, p.name, wr.arrival_timestamp, wr.status, wr.call_timestamp
		FROM waiting_room wr
		JOIN patients p ON wr.patient_id = p.id
		WHERE p.user_id = $1 AND wr.status <> $2
		ORDER BY wr.arrival_timestamp ASC
	`
	rows, err := r.db.QueryContext(ctx, q, userID, model.StatusDone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.WaitingRoomEntry, 0)
	for rows.Next() {
		var (
			e      model.WaitingRoomEntry
			called sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.PatientID, &e.PatientName, &e.ArrivalTimestamp, &e.Status, &called); err != nil {
			return nil, err
		}
		if called.Valid {
			e.CallTimestamp = &called.String
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

// UpdateStatus and Delete only touch entries whose patient belongs to the user.
func (r *WaitingRoomRepo) UpdateStatus(ctx context.Context, userID, id int64, status, callTimestamp string) error {
	var (
		res sql.Result
		err error
	)
	if callTimestamp != "" {
		const q = `UPDATE waiting_room SET status = $1, call_timestamp = COALESCE(call_timestamp, $2)
			WHERE id = $3 AND patient_id IN (SELECT id FROM patients WHERE user_id = $4)`
		res, err = r.db.ExecContext(ctx, q, status, callTimestamp, id, userID)
	} else {
		const q = `UPDATE waiting_room SET status = $1
			WHERE id = $2 AND patient_id IN (SELECT id FROM patients WHERE user_id = $3)`
		res, err = r.db.ExecContext(ctx, q, status, id, userID)
	}
	if err != nil {
		return err
	}
	return affected(res)
}

func (r *WaitingRoomRepo) Delete(ctx context.Context, userID, id int64) error {
	const q = `DELETE FROM waiting_room
		WHERE id = $1 AND patient_id IN (SELECT id FROM patients WHERE user_id = $2)`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	return affected(res)
}
