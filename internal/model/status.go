package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// RoomStatus is the occupancy label of a room. Only the room assignment
// workflow writes it.
type RoomStatus string

const (
	RoomAvailable RoomStatus = "Available"
	RoomOccupied  RoomStatus = "Occupied"
)

// ParseRoomStatus matches case-insensitively.
func ParseRoomStatus(s string) (RoomStatus, error) {
	switch {
	case strings.EqualFold(s, string(RoomAvailable)):
		return RoomAvailable, nil
	case strings.EqualFold(s, string(RoomOccupied)):
		return RoomOccupied, nil
	default:
		return "", fmt.Errorf("unknown room status %q", s)
	}
}

func (s RoomStatus) IsOccupied() bool { return s == RoomOccupied }

func (s *RoomStatus) Scan(src interface{}) error {
	str, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseRoomStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s RoomStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// AdmissionStatus is the lifecycle state of an admission.
type AdmissionStatus string

const (
	AdmissionPending     AdmissionStatus = "Pending"
	AdmissionAdmitted    AdmissionStatus = "Admitted"
	AdmissionTransferred AdmissionStatus = "Transferred"
	AdmissionDischarged  AdmissionStatus = "Discharged"
	AdmissionClosed      AdmissionStatus = "Closed"
)

// ParseAdmissionStatus matches case-insensitively.
func ParseAdmissionStatus(s string) (AdmissionStatus, error) {
	for _, st := range []AdmissionStatus{
		AdmissionPending, AdmissionAdmitted, AdmissionTransferred, AdmissionDischarged, AdmissionClosed,
	} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown admission status %q", s)
}

// IsTerminal reports whether the stay is over. Terminal admissions cannot
// hold rooms or receive new work.
func (s AdmissionStatus) IsTerminal() bool {
	switch s {
	case AdmissionDischarged, AdmissionClosed:
		return true
	case AdmissionPending, AdmissionAdmitted, AdmissionTransferred:
		return false
	default:
		return false
	}
}

// CanTransition reports whether an admission may move from s to next.
func (s AdmissionStatus) CanTransition(next AdmissionStatus) bool {
	switch s {
	case AdmissionPending:
		return next == AdmissionAdmitted || next == AdmissionTransferred || next == AdmissionClosed
	case AdmissionAdmitted:
		return next == AdmissionTransferred || next == AdmissionDischarged
	case AdmissionTransferred:
		return next == AdmissionAdmitted || next == AdmissionDischarged
	case AdmissionDischarged:
		return next == AdmissionClosed
	case AdmissionClosed:
		return false
	default:
		return false
	}
}

func (s *AdmissionStatus) Scan(src interface{}) error {
	str, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseAdmissionStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s AdmissionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// LabRequestStatus is the state of a lab request.
type LabRequestStatus string

const (
	LabRequested LabRequestStatus = "Requested"
	LabCompleted LabRequestStatus = "Completed"
	LabCancelled LabRequestStatus = "Cancelled"
)

func ParseLabRequestStatus(s string) (LabRequestStatus, error) {
	for _, st := range []LabRequestStatus{LabRequested, LabCompleted, LabCancelled} {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown lab request status %q", s)
}

// CanTransition allows only Requested to move, and only to a final state.
func (s LabRequestStatus) CanTransition(next LabRequestStatus) bool {
	switch s {
	case LabRequested:
		return next == LabCompleted || next == LabCancelled
	case LabCompleted, LabCancelled:
		return false
	default:
		return false
	}
}

func (s *LabRequestStatus) Scan(src interface{}) error {
	str, err := scanString(src)
	if err != nil {
		return err
	}
	parsed, err := ParseLabRequestStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s LabRequestStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func scanString(src interface{}) (string, error) {
	switch v := src.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into status", src)
	}
}
