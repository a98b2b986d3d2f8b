package model

type Visit struct {
	ID                          int64  `json:"id"`
	PatientID                   int64  `json:"patient_id"`
	UserID                      int64  `json:"user_id"`
	Reason                      string `json:"visit_reason"`
	Weight                      string `json:"visit_weight"`
	WeightPercentile            string `json:"visit_weight_percentile"`
	Height                      string `json:"visit_height"`
	HeightPercentile            string `json:"visit_height_percentile"`
	HeadCircumference           string `json:"visit_head_circumference"`
	HeadCircumferencePercentile string `json:"visit_head_circumference_percentile"`
	BMI                         string `json:"visit_bmi"`
	PhysicalExamination         string `json:"visit_physical_examination"`
	Diagnosis                   string `json:"visit_diagnosis"`
	Date                        string `json:"visit_date"`
	Hour                        string `json:"visit_hour"`
}

type Medication struct {
	ID          int64  `json:"id"`
	PatientID   int64  `json:"patient_id"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"medication_name"`
	Date        string `json:"medication_date"`
	Duration    string `json:"medication_duration"`
	DosageForm  string `json:"dosage_form"`
	TimesPerDay string `json:"times_per_day"`
	Amount      string `json:"amount"`
}

type LabTest struct {
	ID        int64  `json:"id"`
	PatientID int64  `json:"patient_id"`
	UserID    int64  `json:"user_id"`
	Name      string `json:"lab_test_name"`
	Date      string `json:"lab_test_date"`
}
