package assignment

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

// NoChangesNotice is returned when an update matches the stored row.
const NoChangesNotice = "No changes recorded; the assignment already has these values"

type AssignmentServicer interface {
	List(ctx context.Context) ([]model.RoomAssignmentView, error)
	Create(ctx context.Context, in model.AssignmentInput) (int64, error)
	Update(ctx context.Context, in model.AssignmentInput) (changed bool, err error)
	Delete(ctx context.Context, id int64) error
}

// Service keeps room occupancy in step with room assignments. Every
// availability check runs under a row lock in the transaction that writes.
type Service struct {
	tx          repository.Transactor
	assignments repository.RoomAssignmentRepository
	rooms       repository.RoomRepository
	admissions  repository.AdmissionRepository
	metrics     *metrics.Metrics
}

func NewService(
	tx repository.Transactor,
	assignments repository.RoomAssignmentRepository,
	rooms repository.RoomRepository,
	admissions repository.AdmissionRepository,
	m *metrics.Metrics,
) *Service {
	return &Service{
		tx:          tx,
		assignments: assignments,
		rooms:       rooms,
		admissions:  admissions,
		metrics:     m,
	}
}

func (s *Service) List(ctx context.Context) ([]model.RoomAssignmentView, error) {
	list, err := s.assignments.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return list, nil
}

func (s *Service) Create(ctx context.Context, in model.AssignmentInput) (int64, error) {
	in.RoomNo = strings.TrimSpace(in.RoomNo)
	if in.AdmissionID <= 0 || in.RoomNo == "" {
		return 0, apperrors.NewValidation("admissionid and room_no are required", nil)
	}

	var id int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.openAdmission(ctx, in.AdmissionID); err != nil {
			return err
		}

		room, err := s.rooms.GetForUpdate(ctx, in.RoomNo)
		if err != nil {
			return lookupError(err, "Invalid Room No")
		}
		if room.Status.IsOccupied() {
			return apperrors.NewConflict("Room already occupied", nil)
		}

		id, err = s.assignments.Create(ctx, in.AdmissionID, room.RoomNo, in.StartDate)
		if err != nil {
			return writeError(err, "Room already occupied")
		}
		if err := s.rooms.SetStatus(ctx, room.RoomNo, model.RoomOccupied); err != nil {
			return writeError(err, "")
		}
		return nil
	})
	err = s.observe("create", err)
	if err != nil {
		return 0, err
	}

	log.Info().Int64("assignment_id", id).Int64("admission_id", in.AdmissionID).
		Str("room_no", in.RoomNo).Msg("room assigned")
	return id, nil
}

func (s *Service) Update(ctx context.Context, in model.AssignmentInput) (bool, error) {
	in.RoomNo = strings.TrimSpace(in.RoomNo)
	if in.AssignmentID <= 0 || in.AdmissionID <= 0 || in.RoomNo == "" {
		return false, apperrors.NewValidation("assignmentid, admissionid and room_no are required", nil)
	}

	var changed bool
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.openAdmission(ctx, in.AdmissionID); err != nil {
			return err
		}
		if _, err := s.rooms.Get(ctx, in.RoomNo); err != nil {
			return lookupError(err, "Invalid Room No")
		}

		current, err := s.assignments.GetForUpdate(ctx, in.AssignmentID)
		if err != nil {
			return lookupError(err, "Assignment not found")
		}

		locked, err := s.lockRooms(ctx, current.RoomNo, in.RoomNo)
		if err != nil {
			return err
		}

		moved := current.RoomNo != in.RoomNo
		if moved && locked[in.RoomNo].Status.IsOccupied() {
			return apperrors.NewConflict("New room is already occupied", nil)
		}

		changed, err = s.assignments.Update(ctx, in)
		if err != nil {
			return writeError(err, "New room is already occupied")
		}

		if moved {
			if err := s.rooms.SetStatus(ctx, in.RoomNo, model.RoomOccupied); err != nil {
				return writeError(err, "")
			}
			if err := s.rooms.SetStatus(ctx, current.RoomNo, model.RoomAvailable); err != nil {
				return writeError(err, "")
			}
		}
		return nil
	})
	err = s.observe("update", err)
	if err != nil {
		return false, err
	}

	if !changed {
		log.Debug().Int64("assignment_id", in.AssignmentID).Msg("room assignment unchanged")
	}
	return changed, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidation("assignmentid is required", nil)
	}

	var roomNo string
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.assignments.GetForUpdate(ctx, id)
		if err != nil {
			return lookupError(err, "Assignment not found")
		}
		roomNo = current.RoomNo

		if _, err := s.rooms.GetForUpdate(ctx, roomNo); err != nil {
			return writeError(err, "")
		}
		if err := s.assignments.Delete(ctx, id); err != nil {
			return lookupError(err, "Assignment not found")
		}
		if err := s.rooms.SetStatus(ctx, roomNo, model.RoomAvailable); err != nil {
			return writeError(err, "")
		}
		return nil
	})
	err = s.observe("delete", err)
	if err != nil {
		return err
	}

	log.Info().Int64("assignment_id", id).Str("room_no", roomNo).Msg("room released")
	return nil
}

// openAdmission locks the admission so a concurrent discharge cannot
// interleave with the assignment write.
func (s *Service) openAdmission(ctx context.Context, id int64) (*model.Admission, error) {
	admission, err := s.admissions.GetForUpdate(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Invalid Admission ID")
	}
	if admission.Status.IsTerminal() {
		return nil, apperrors.NewConflict("Admission is closed", nil)
	}
	return admission, nil
}

// lockRooms takes row locks on the given rooms in ascending room_no order so
// two concurrent moves between the same rooms cannot deadlock.
func (s *Service) lockRooms(ctx context.Context, roomNos ...string) (map[string]*model.Room, error) {
	unique := make([]string, 0, len(roomNos))
	seen := make(map[string]bool, len(roomNos))
	for _, no := range roomNos {
		if !seen[no] {
			seen[no] = true
			unique = append(unique, no)
		}
	}
	sort.Strings(unique)

	locked := make(map[string]*model.Room, len(unique))
	for _, no := range unique {
		room, err := s.rooms.GetForUpdate(ctx, no)
		if err != nil {
			return nil, lookupError(err, "Invalid Room No")
		}
		locked[no] = room
	}
	return locked, nil
}

// observe records the outcome and makes sure any failure leaves as an
// AppError.
func (s *Service) observe(op string, err error) error {
	if err == nil {
		s.metrics.ObserveAssignment(op, "success")
		return nil
	}

	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.NewInternal(err)
	}
	if appErr.Kind == apperrors.KindInternal {
		log.Error().Err(err).Str("operation", op).Msg("room assignment rolled back")
	} else {
		log.Debug().Err(err).Str("operation", op).Msg("room assignment refused")
	}
	s.metrics.ObserveAssignment(op, appErr.Kind.String())
	return appErr
}

// lookupError reports a missing row as NotFound with msg.
func lookupError(err error, msg string) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(msg, err)
	}
	return apperrors.NewInternal(err)
}

// writeError reports a unique violation as Conflict with conflictMsg.
func writeError(err error, conflictMsg string) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if conflictMsg != "" && errors.Is(err, repository.ErrDuplicate) {
		return apperrors.NewConflict(conflictMsg, err)
	}
	return apperrors.NewInternal(err)
}
