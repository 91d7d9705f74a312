package model

import "time"

// RoomAssignment binds one admission to one room. A room has at most one
// assignment at a time.
type RoomAssignment struct {
	ID          int64  `json:"assignmentid" db:"assignment_id"`
	AdmissionID int64  `json:"admissionid" db:"admission_id"`
	RoomNo      string `json:"room_no" db:"room_no"`
	StartDate   string `json:"start_date" db:"start_date"`
}

// RoomAssignmentView is the list row shown to operators.
type RoomAssignmentView struct {
	RoomAssignment
	PatientName  string     `json:"patient_name" db:"patient_name"`
	RoomStatus   RoomStatus `json:"room_status" db:"room_status"`
	CategoryName string     `json:"category_name" db:"category_name"`
	FloorName    string     `json:"floor_name" db:"floor_name"`
}

// AssignmentInput carries the fields of a create or update. A nil StartDate
// means today on create and unchanged on update.
type AssignmentInput struct {
	AssignmentID int64
	AdmissionID  int64
	RoomNo       string
	StartDate    *time.Time
}
