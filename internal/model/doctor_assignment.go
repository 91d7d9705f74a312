package model

import "time"

type DoctorAssignment struct {
	ID          int64     `json:"id" db:"id"`
	AdmissionID int64     `json:"admission_id" db:"admission_id" validate:"required"`
	DoctorID    int64     `json:"doctor_id" db:"doctor_id" validate:"required"`
	Role        string    `json:"role" db:"role" validate:"required,max=50"`
	AssignedAt  time.Time `json:"assigned_at" db:"assigned_at"`
	DoctorName  string    `json:"doctor_name,omitempty" db:"doctor_name"`
}
