package room

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

type RoomServicer interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.RoomView, error)
	Get(ctx context.Context, roomNo string) (*model.Room, error)
	Create(ctx context.Context, room *model.Room) error
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, roomNo string) error
}

// Service manages the room register. Occupancy is owned by the room
// assignment workflow; writes here never touch status.
type Service struct {
	tx        repository.Transactor
	rooms     repository.RoomRepository
	validator validator.Validator
}

func NewService(tx repository.Transactor, rooms repository.RoomRepository, v validator.Validator) *Service {
	return &Service{tx: tx, rooms: rooms, validator: v}
}

func (s *Service) List(ctx context.Context, filter model.ListFilter) ([]model.RoomView, error) {
	if filter.Status != "" {
		st, err := model.ParseRoomStatus(filter.Status)
		if err != nil {
			return nil, apperrors.NewValidation(err.Error(), err)
		}
		filter.Status = string(st)
	}
	rooms, err := s.rooms.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return rooms, nil
}

func (s *Service) Get(ctx context.Context, roomNo string) (*model.Room, error) {
	roomNo = strings.TrimSpace(roomNo)
	if roomNo == "" {
		return nil, apperrors.NewValidation("room_no is required", nil)
	}
	room, err := s.rooms.Get(ctx, roomNo)
	if err != nil {
		return nil, storeError(err)
	}
	return room, nil
}

func (s *Service) Create(ctx context.Context, room *model.Room) error {
	room.RoomNo = strings.TrimSpace(room.RoomNo)
	if err := s.validator.Validate(room); err != nil {
		return apperrors.NewValidation(err.Error(), err)
	}
	if room.Status != "" && room.Status != model.RoomAvailable {
		return apperrors.NewValidation("status is managed by room assignments", nil)
	}
	room.Status = model.RoomAvailable

	if err := s.rooms.Create(ctx, room); err != nil {
		return storeError(err)
	}
	log.Info().Str("room_no", room.RoomNo).Msg("room created")
	return nil
}

func (s *Service) Update(ctx context.Context, room *model.Room) error {
	room.RoomNo = strings.TrimSpace(room.RoomNo)
	if err := s.validator.Validate(room); err != nil {
		return apperrors.NewValidation(err.Error(), err)
	}
	if room.Status != "" {
		return apperrors.NewValidation("status is managed by room assignments", nil)
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return storeError(err)
	}
	return nil
}

// Delete removes a room that nobody occupies.
func (s *Service) Delete(ctx context.Context, roomNo string) error {
	roomNo = strings.TrimSpace(roomNo)
	if roomNo == "" {
		return apperrors.NewValidation("room_no is required", nil)
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		room, err := s.rooms.GetForUpdate(ctx, roomNo)
		if err != nil {
			return storeError(err)
		}
		if room.Status.IsOccupied() {
			return apperrors.NewConflict("Room is occupied", nil)
		}
		if err := s.rooms.Delete(ctx, roomNo); err != nil {
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Str("room_no", roomNo).Msg("room deleted")
	return nil
}

func storeError(err error) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("Room not found", err)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict("Room already exists", err)
	case errors.Is(err, repository.ErrForeignKey):
		return apperrors.NewConflict("Room is still in use", err)
	default:
		return apperrors.NewInternal(err)
	}
}
