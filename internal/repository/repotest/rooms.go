package repotest

import (
	"context"
	"fmt"
	"sort"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

type roomRepo struct{ s *Store }

func (s *Store) Rooms() repository.RoomRepository { return &roomRepo{s: s} }

func (r *roomRepo) List(_ context.Context, filter model.ListFilter) ([]model.RoomView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("rooms.list"); err != nil {
		return nil, err
	}

	out := []model.RoomView{}
	for _, room := range r.s.d.rooms {
		if filter.Status != "" && string(room.Status) != filter.Status {
			continue
		}
		out = append(out, model.RoomView{Room: room})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNo < out[j].RoomNo })
	return out, nil
}

func (r *roomRepo) Get(_ context.Context, roomNo string) (*model.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("rooms.get"); err != nil {
		return nil, err
	}

	room, ok := r.s.d.rooms[roomNo]
	if !ok {
		return nil, fmt.Errorf("get room: %w", repository.ErrNotFound)
	}
	return &room, nil
}

func (r *roomRepo) GetForUpdate(ctx context.Context, roomNo string) (*model.Room, error) {
	if err := requireTx(ctx, "room "+roomNo); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	r.s.Locks = append(r.s.Locks, "room:"+roomNo)
	r.s.mu.Unlock()
	return r.Get(ctx, roomNo)
}

func (r *roomRepo) Create(_ context.Context, room *model.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("rooms.insert"); err != nil {
		return err
	}

	if _, exists := r.s.d.rooms[room.RoomNo]; exists {
		return fmt.Errorf("create room: %w", repository.ErrDuplicate)
	}
	room.Status = model.RoomAvailable
	r.s.d.rooms[room.RoomNo] = *room
	return nil
}

func (r *roomRepo) Update(_ context.Context, room *model.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.d.rooms[room.RoomNo]
	if !ok {
		return fmt.Errorf("update room: %w", repository.ErrNotFound)
	}
	existing.CategoryID = room.CategoryID
	existing.FloorID = room.FloorID
	r.s.d.rooms[room.RoomNo] = existing
	return nil
}

func (r *roomRepo) Delete(_ context.Context, roomNo string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.d.rooms[roomNo]; !ok {
		return fmt.Errorf("delete room: %w", repository.ErrNotFound)
	}
	for _, a := range r.s.d.assignments {
		if a.RoomNo == roomNo {
			return fmt.Errorf("delete room: %w", repository.ErrForeignKey)
		}
	}
	delete(r.s.d.rooms, roomNo)
	return nil
}

func (r *roomRepo) SetStatus(_ context.Context, roomNo string, status model.RoomStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("rooms.set_status"); err != nil {
		return err
	}

	room, ok := r.s.d.rooms[roomNo]
	if !ok {
		return fmt.Errorf("set room status: %w", repository.ErrNotFound)
	}
	room.Status = status
	r.s.d.rooms[roomNo] = room
	return nil
}
