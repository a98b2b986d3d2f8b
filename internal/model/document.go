package model

// Document is a stored patient file.
// This is a pure domain model with no database-specific dependencies or tags.
// Path is relative to the storage root and has the form <patient id>/<stored name>.
type Document struct {
	ID         int64  `json:"document_id"`
	PatientID  int64  `json:"patient_id"`
	Name       string `json:"document_name"`
	Path       string `json:"document_path"`
	UploadDate string `json:"upload_date"`
}
