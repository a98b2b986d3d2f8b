package model

// Patient belongs to exactly one user. Names are unique per user.
type Patient struct {
	ID                       int64  `json:"id"`
	UserID                   int64  `json:"user_id"`
	CreationDate             string `json:"creation_date"`
	Name                     string `json:"name"`
	Sex                      string `json:"sex"`
	DateOfBirth              string `json:"date_of_birth"`
	Phone                    string `json:"phone"`
	Address                  string `json:"address"`
	PersonalMedicalHistory   string `json:"personal_medical_history"`
	FamilialMedicalHistory   string `json:"familial_medical_history"`
	CurrentMedicalConditions string `json:"current_medical_conditions"`
	CurrentMedications       string `json:"current_medications"`
	Allergies                string `json:"allergies"`
	Surgeries                string `json:"surgeries"`
	Vaccines                 string `json:"vaccines"`
}
