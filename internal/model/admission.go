package model

import "time"

type Admission struct {
	ID         int64           `json:"id" db:"id"`
	PatientID  int64           `json:"patient_id" db:"patient_id"`
	DoctorID   int64           `json:"doctor_id" db:"doctor_id"`
	CreatedBy  *int64          `json:"created_by" db:"created_by"`
	AdmittedAt time.Time       `json:"admitted_at" db:"admitted_at"`
	Status     AdmissionStatus `json:"status" db:"status"`
}

type AdmissionView struct {
	Admission
	PatientName string `json:"patient_name" db:"patient_name"`
	DoctorName  string `json:"doctor_name" db:"doctor_name"`
}

type AdmitRequest struct {
	PatientID int64           `json:"patient_id" validate:"required"`
	DoctorID  int64           `json:"doctor_id" validate:"required"`
	CreatedBy *int64          `json:"created_by"`
	Status    AdmissionStatus `json:"status"`
}
