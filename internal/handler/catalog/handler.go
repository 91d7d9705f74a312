// Package catalog exposes the master-data entities over the operation
// dispatch endpoint.
package catalog

import (
	"context"

	"github.com/jwalitptl/hospital-admin/internal/handler"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/pkg/params"
)

// Servicer is the catalog service contract for one entity.
type Servicer[T any] interface {
	Entity() model.Entity
	List(ctx context.Context, filter model.ListFilter) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, rec *T) (int64, error)
	Update(ctx context.Context, id int64, rec *T) error
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) error
}

// NewDispatcher wires list, get, insert, update, delete (alias softDelete)
// and restore for svc's entity.
func NewDispatcher[T any](svc Servicer[T]) *handler.Dispatcher {
	entity := svc.Entity()
	d := handler.NewDispatcher(entity.Name)

	d.Handle("list", func(ctx context.Context, p params.Params) (interface{}, error) {
		return svc.List(ctx, model.ListFilter{
			Search:          p.String("search"),
			IncludeArchived: p.Bool("include_archived"),
		})
	})

	d.Handle("get", func(ctx context.Context, p params.Params) (interface{}, error) {
		id, err := handler.ID(p)
		if err != nil {
			return nil, err
		}
		return svc.Get(ctx, id)
	})

	d.Handle("insert", func(ctx context.Context, p params.Params) (interface{}, error) {
		var rec T
		if err := p.Decode(&rec); err != nil {
			return nil, handler.Validation(err)
		}
		id, err := svc.Create(ctx, &rec)
		if err != nil {
			return nil, err
		}
		return handler.Created(id), nil
	}, "create")

	d.Handle("update", func(ctx context.Context, p params.Params) (interface{}, error) {
		id, err := handler.ID(p)
		if err != nil {
			return nil, err
		}
		var rec T
		if err := p.Decode(&rec); err != nil {
			return nil, handler.Validation(err)
		}
		if err := svc.Update(ctx, id, &rec); err != nil {
			return nil, err
		}
		return handler.Message(entity.Label + " updated"), nil
	})

	d.Handle("delete", func(ctx context.Context, p params.Params) (interface{}, error) {
		id, err := handler.ID(p)
		if err != nil {
			return nil, err
		}
		if err := svc.Delete(ctx, id); err != nil {
			return nil, err
		}
		if entity.Archivable {
			return handler.Message(entity.Label + " archived"), nil
		}
		return handler.Message(entity.Label + " deleted"), nil
	}, "softDelete")

	d.Handle("restore", func(ctx context.Context, p params.Params) (interface{}, error) {
		id, err := handler.ID(p)
		if err != nil {
			return nil, err
		}
		if err := svc.Restore(ctx, id); err != nil {
			return nil, err
		}
		return handler.Message(entity.Label + " restored"), nil
	})

	return d
}
