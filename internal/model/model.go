// Package model contains domain models shared by the repository, service and HTTP layers.
// Dates coming from clients are kept as the strings they were sent as.
package model

import "time"

// DateLayout is the calendar-date format used for upload dates.
const DateLayout = "2006-01-02"

// User is a clinician account.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
