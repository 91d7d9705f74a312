package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

type roomRepository struct {
	BaseRepository
}

func NewRoomRepository(db *sqlx.DB, m *metrics.Metrics) repository.RoomRepository {
	return &roomRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *roomRepository) List(ctx context.Context, filter model.ListFilter) ([]model.RoomView, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("r.room_no ILIKE $%d", len(args)))
	}

	query := `
		SELECT r.room_no, r.category_id, r.floor_id, r.status,
			c.name AS category_name, f.name AS floor_name, c.daily_rate
		FROM rooms r
		JOIN room_categories c ON c.id = r.category_id
		JOIN floors f ON f.id = r.floor_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY r.room_no"

	rooms := []model.RoomView{}
	if err := sqlx.SelectContext(ctx, r.conn(ctx), &rooms, query, args...); err != nil {
		return nil, translate("list rooms", err)
	}
	return rooms, nil
}

func (r *roomRepository) Get(ctx context.Context, roomNo string) (*model.Room, error) {
	query := `SELECT room_no, category_id, floor_id, status FROM rooms WHERE room_no = $1`

	var room model.Room
	if err := sqlx.GetContext(ctx, r.conn(ctx), &room, query, roomNo); err != nil {
		return nil, translate("get room", err)
	}
	return &room, nil
}

func (r *roomRepository) GetForUpdate(ctx context.Context, roomNo string) (*model.Room, error) {
	if !inTx(ctx) {
		return nil, fmt.Errorf("lock room %s: no transaction in context", roomNo)
	}
	query := `SELECT room_no, category_id, floor_id, status FROM rooms WHERE room_no = $1 FOR UPDATE`

	var room model.Room
	if err := sqlx.GetContext(ctx, r.conn(ctx), &room, query, roomNo); err != nil {
		return nil, translate("lock room", err)
	}
	return &room, nil
}

func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	query := `
		INSERT INTO rooms (room_no, category_id, floor_id, status)
		VALUES ($1, $2, $3, $4)`

	room.Status = model.RoomAvailable
	_, err := r.conn(ctx).ExecContext(ctx, query,
		room.RoomNo,
		room.CategoryID,
		room.FloorID,
		room.Status,
	)
	r.metrics.ObserveDBOperation("rooms.insert", err)
	if err != nil {
		return translate("create room", err)
	}
	return nil
}

// Update changes the category and floor only; status belongs to the
// assignment workflow.
func (r *roomRepository) Update(ctx context.Context, room *model.Room) error {
	query := `UPDATE rooms SET category_id = $1, floor_id = $2 WHERE room_no = $3`

	res, err := r.conn(ctx).ExecContext(ctx, query, room.CategoryID, room.FloorID, room.RoomNo)
	r.metrics.ObserveDBOperation("rooms.update", err)
	if err != nil {
		return translate("update room", err)
	}
	return affected("update room", res)
}

func (r *roomRepository) Delete(ctx context.Context, roomNo string) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM rooms WHERE room_no = $1`, roomNo)
	r.metrics.ObserveDBOperation("rooms.delete", err)
	if err != nil {
		return translate("delete room", err)
	}
	return affected("delete room", res)
}

func (r *roomRepository) SetStatus(ctx context.Context, roomNo string, status model.RoomStatus) error {
	res, err := r.conn(ctx).ExecContext(ctx, `UPDATE rooms SET status = $1 WHERE room_no = $2`, status, roomNo)
	r.metrics.ObserveDBOperation("rooms.set_status", err)
	if err != nil {
		return translate("set room status", err)
	}
	return affected("set room status", res)
}
