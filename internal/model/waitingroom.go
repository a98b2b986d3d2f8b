package model

// Waiting-room statuses. Every status except StatusDone keeps the entry active.
const (
	StatusWaiting        = "en attente"
	StatusCalled         = "appelé"
	StatusInConsultation = "en consultation"
	StatusDone           = "terminé"
)

// WaitingRoomStatuses lists the accepted statuses in workflow order.
var WaitingRoomStatuses = []string{StatusWaiting, StatusCalled, StatusInConsultation, StatusDone}

// ValidWaitingRoomStatus reports whether s is one of WaitingRoomStatuses.
func ValidWaitingRoomStatus(s string) bool {
	for _, v := range WaitingRoomStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// WaitingRoomEntry is a patient's presence in the queue.
// PatientName is only populated by listing queries.
type WaitingRoomEntry struct {
	ID               int64   `json:"id"`
	PatientID        int64   `json:"patient_id"`
	PatientName      string  `json:"patient_name,omitempty"`
	ArrivalTimestamp string  `json:"arrival_timestamp"`
	Status           string  `json:"status"`
	CallTimestamp    *string `json:"call_timestamp"`
}
