package admission

import (
	"context"

	"github.com/jwalitptl/hospital-admin/internal/handler"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/service/admission"
	"github.com/jwalitptl/hospital-admin/pkg/params"
)

func NewDispatcher(svc admission.AdmissionServicer) *handler.Dispatcher {
	d := handler.NewDispatcher("admissions")

	d.Handle("list", func(ctx context.Context, p params.Params) (interface{}, error) {
		return svc.List(ctx, p.String("status"))
	})

	d.Handle("get", func(ctx context.Context, p params.Params) (interface{}, error) {
		id, err := handler.ID(p)
		if err != nil {
			return nil, err
		}
		return svc.Get(ctx, id)
	})

	d.Handle("admit", func(ctx context.Context, p params.Params) (interface{}, error) {
		var req model.AdmitRequest
		if err := p.Decode(&req); err != nil {
			return nil, handler.Validation(err)
		}
		id, err := svc.Admit(ctx, req)
		if err != nil {
			return nil, err
		}
		return handler.Created(id), nil
	}, "insert")

	d.Handle("updateStatus", func(ctx context.Context, p params.Params) (interface{}, error) {
		id, err := handler.ID(p)
		if err != nil {
			return nil, err
		}
		if err := svc.UpdateStatus(ctx, id, model.AdmissionStatus(p.String("status"))); err != nil {
			return nil, err
		}
		return handler.Message("Admission status updated"), nil
	})

	return d
}
