package doctorassignment

import (
	"context"

	"github.com/jwalitptl/hospital-admin/internal/handler"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/service/doctorassignment"
	"github.com/jwalitptl/hospital-admin/pkg/params"
)

func NewDispatcher(svc doctorassignment.DoctorAssignmentServicer) *handler.Dispatcher {
	d := handler.NewDispatcher("doctor-assignments")

	d.Handle("list", func(ctx context.Context, p params.Params) (interface{}, error) {
		admissionID, _, err := p.Int64("admission_id")
		if err != nil {
			return nil, handler.Validation(err)
		}
		return svc.List(ctx, admissionID)
	})

	d.Handle("assign", func(ctx context.Context, p params.Params) (interface{}, error) {
		var da model.DoctorAssignment
		if err := p.Decode(&da); err != nil {
			return nil, handler.Validation(err)
		}
		id, err := svc.Assign(ctx, &da)
		if err != nil {
			return nil, err
		}
		return handler.Created(id), nil
	}, "insert")

	d.Handle("unassign", func(ctx context.Context, p params.Params) (interface{}, error) {
		id, err := handler.ID(p)
		if err != nil {
			return nil, err
		}
		if err := svc.Unassign(ctx, id); err != nil {
			return nil, err
		}
		return handler.Message("Doctor unassigned"), nil
	}, "delete")

	return d
}
