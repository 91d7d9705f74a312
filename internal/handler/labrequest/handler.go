package labrequest

import (
	"context"

	"github.com/jwalitptl/hospital-admin/internal/handler"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/service/labrequest"
	"github.com/jwalitptl/hospital-admin/pkg/params"
)

func NewDispatcher(svc labrequest.LabRequestServicer) *handler.Dispatcher {
	d := handler.NewDispatcher("lab-requests")

	d.Handle("list", func(ctx context.Context, p params.Params) (interface{}, error) {
		admissionID, _, err := p.Int64("admission_id")
		if err != nil {
			return nil, handler.Validation(err)
		}
		return svc.List(ctx, model.ListFilter{AdmissionID: admissionID, Status: p.String("status")})
	})

	d.Handle("get", func(ctx context.Context, p params.Params) (interface{}, error) {
		id, err := handler.ID(p)
		if err != nil {
			return nil, err
		}
		return svc.Get(ctx, id)
	})

	d.Handle("insert", func(ctx context.Context, p params.Params) (interface{}, error) {
		var req model.LabRequest
		if err := p.Decode(&req); err != nil {
			return nil, handler.Validation(err)
		}
		id, err := svc.Create(ctx, &req)
		if err != nil {
			return nil, err
		}
		return handler.Created(id), nil
	}, "create")

	d.Handle("complete", func(ctx context.Context, p params.Params) (interface{}, error) {
		id, err := handler.ID(p)
		if err != nil {
			return nil, err
		}
		if err := svc.Complete(ctx, id, p.String("result")); err != nil {
			return nil, err
		}
		return handler.Message("Lab request completed"), nil
	})

	d.Handle("cancel", func(ctx context.Context, p params.Params) (interface{}, error) {
		id, err := handler.ID(p)
		if err != nil {
			return nil, err
		}
		if err := svc.Cancel(ctx, id); err != nil {
			return nil, err
		}
		return handler.Message("Lab request cancelled"), nil
	})

	d.Handle("delete", func(ctx context.Context, p params.Params) (interface{}, error) {
		id, err := handler.ID(p)
		if err != nil {
			return nil, err
		}
		if err := svc.Delete(ctx, id); err != nil {
			return nil, err
		}
		return handler.Message("Lab request deleted"), nil
	})

	return d
}
