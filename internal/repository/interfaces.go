package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jwalitptl/hospital-admin/internal/model"
)

// Store-level outcomes that services translate into application errors.
var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrForeignKey = errors.New("referenced record missing or still in use")
)

// All repository interfaces in one file
type (
	// Transactor runs fn inside one database transaction. Repository calls
	// made with the ctx passed to fn join that transaction. The transaction
	// is rolled back when fn returns an error or panics.
	Transactor interface {
		WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// CatalogRepository serves every flat master-data table.
	CatalogRepository[T any] interface {
		List(ctx context.Context, filter model.ListFilter) ([]T, error)
		Get(ctx context.Context, id int64) (*T, error)
		Create(ctx context.Context, rec *T) (int64, error)
		Update(ctx context.Context, id int64, rec *T) error
		Delete(ctx context.Context, id int64) error
		SetActive(ctx context.Context, id int64, active bool) error
	}

	RoomRepository interface {
		List(ctx context.Context, filter model.ListFilter) ([]model.RoomView, error)
		Get(ctx context.Context, roomNo string) (*model.Room, error)
		// GetForUpdate locks the room row until the surrounding transaction ends.
		GetForUpdate(ctx context.Context, roomNo string) (*model.Room, error)
		Create(ctx context.Context, room *model.Room) error
		Update(ctx context.Context, room *model.Room) error
		Delete(ctx context.Context, roomNo string) error
		SetStatus(ctx context.Context, roomNo string, status model.RoomStatus) error
	}

	AdmissionRepository interface {
		List(ctx context.Context, filter model.ListFilter) ([]model.AdmissionView, error)
		Get(ctx context.Context, id int64) (*model.Admission, error)
		GetForUpdate(ctx context.Context, id int64) (*model.Admission, error)
		Create(ctx context.Context, admission *model.Admission) (int64, error)
		UpdateStatus(ctx context.Context, id int64, status model.AdmissionStatus) error
	}

	RoomAssignmentRepository interface {
		List(ctx context.Context) ([]model.RoomAssignmentView, error)
		Get(ctx context.Context, id int64) (*model.RoomAssignment, error)
		GetForUpdate(ctx context.Context, id int64) (*model.RoomAssignment, error)
		// Create inserts the assignment; a nil startDate means today.
		Create(ctx context.Context, admissionID int64, roomNo string, startDate *time.Time) (int64, error)
		// Update reports whether the row actually changed.
		Update(ctx context.Context, in model.AssignmentInput) (bool, error)
		Delete(ctx context.Context, id int64) error
		ExistsForAdmission(ctx context.Context, admissionID int64) (bool, error)
	}

	BillingRepository interface {
		ListByAdmission(ctx context.Context, admissionID int64) ([]model.BillingItem, error)
		Get(ctx context.Context, id int64) (*model.BillingItem, error)
		Create(ctx context.Context, item *model.BillingItem) (int64, error)
		Update(ctx context.Context, item *model.BillingItem) error
		Delete(ctx context.Context, id int64) error
	}

	LabRequestRepository interface {
		List(ctx context.Context, filter model.ListFilter) ([]model.LabRequest, error)
		Get(ctx context.Context, id int64) (*model.LabRequest, error)
		Create(ctx context.Context, req *model.LabRequest) (int64, error)
		// SetStatus moves the request from one status to another. A request that
		// is missing or no longer in from reports ErrNotFound.
		SetStatus(ctx context.Context, id int64, from, to model.LabRequestStatus, result *string) error
		Delete(ctx context.Context, id int64) error
	}

	DoctorAssignmentRepository interface {
		List(ctx context.Context, filter model.ListFilter) ([]model.DoctorAssignment, error)
		Create(ctx context.Context, da *model.DoctorAssignment) (int64, error)
		Delete(ctx context.Context, id int64) error
	}
)
