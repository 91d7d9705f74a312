package model

import "time"

type LabRequest struct {
	ID          int64            `json:"id" db:"id"`
	AdmissionID int64            `json:"admission_id" db:"admission_id" validate:"required"`
	LabTestID   int64            `json:"lab_test_id" db:"lab_test_id" validate:"required"`
	RequestedBy int64            `json:"requested_by" db:"requested_by" validate:"required"`
	Status      LabRequestStatus `json:"status" db:"status"`
	Result      *string          `json:"result" db:"result"`
	RequestedAt time.Time        `json:"requested_at" db:"requested_at"`
	LabTestName string           `json:"lab_test_name,omitempty" db:"lab_test_name"`
}
