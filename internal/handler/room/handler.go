package room

import (
	"context"

	"github.com/jwalitptl/hospital-admin/internal/handler"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/service/room"
	"github.com/jwalitptl/hospital-admin/pkg/params"
)

func NewDispatcher(svc room.RoomServicer) *handler.Dispatcher {
	d := handler.NewDispatcher("rooms")

	d.Handle("list", func(ctx context.Context, p params.Params) (interface{}, error) {
		return svc.List(ctx, model.ListFilter{Status: p.String("status")})
	})

	d.Handle("get", func(ctx context.Context, p params.Params) (interface{}, error) {
		return svc.Get(ctx, p.String("room_no"))
	})

	d.Handle("insert", func(ctx context.Context, p params.Params) (interface{}, error) {
		var r model.Room
		if err := p.Decode(&r); err != nil {
			return nil, handler.Validation(err)
		}
		if err := svc.Create(ctx, &r); err != nil {
			return nil, err
		}
		return map[string]string{"room_no": r.RoomNo}, nil
	}, "create")

	d.Handle("update", func(ctx context.Context, p params.Params) (interface{}, error) {
		var r model.Room
		if err := p.Decode(&r); err != nil {
			return nil, handler.Validation(err)
		}
		if err := svc.Update(ctx, &r); err != nil {
			return nil, err
		}
		return handler.Message("Room updated"), nil
	})

	d.Handle("delete", func(ctx context.Context, p params.Params) (interface{}, error) {
		if err := svc.Delete(ctx, p.String("room_no")); err != nil {
			return nil, err
		}
		return handler.Message("Room deleted"), nil
	})

	return d
}
