package billing

import (
	"context"

	"github.com/jwalitptl/hospital-admin/internal/handler"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/service/billing"
	"github.com/jwalitptl/hospital-admin/pkg/params"
)

func NewDispatcher(svc billing.BillingServicer) *handler.Dispatcher {
	d := handler.NewDispatcher("billing")

	d.Handle("list", func(ctx context.Context, p params.Params) (interface{}, error) {
		admissionID, err := p.RequireInt64("admission_id")
		if err != nil {
			return nil, handler.Validation(err)
		}
		return svc.Statement(ctx, admissionID)
	})

	d.Handle("get", func(ctx context.Context, p params.Params) (interface{}, error) {
		id, err := handler.ID(p)
		if err != nil {
			return nil, err
		}
		return svc.Get(ctx, id)
	})

	d.Handle("insert", func(ctx context.Context, p params.Params) (interface{}, error) {
		var item model.BillingItem
		if err := p.Decode(&item); err != nil {
			return nil, handler.Validation(err)
		}
		id, err := svc.Create(ctx, &item)
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
		var item model.BillingItem
		if err := p.Decode(&item); err != nil {
			return nil, handler.Validation(err)
		}
		item.ID = id
		if err := svc.Update(ctx, &item); err != nil {
			return nil, err
		}
		return handler.Message("Billing item updated"), nil
	})

	d.Handle("delete", func(ctx context.Context, p params.Params) (interface{}, error) {
		id, err := handler.ID(p)
		if err != nil {
			return nil, err
		}
		if err := svc.Delete(ctx, id); err != nil {
			return nil, err
		}
		return handler.Message("Billing item deleted"), nil
	})

	return d
}
