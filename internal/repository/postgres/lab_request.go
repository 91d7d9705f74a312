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

type labRequestRepository struct {
	BaseRepository
}

func NewLabRequestRepository(db *sqlx.DB, m *metrics.Metrics) repository.LabRequestRepository {
	return &labRequestRepository{BaseRepository: NewBaseRepository(db, m)}
}

const labRequestSelect = `
	SELECT lr.id, lr.admission_id, lr.lab_test_id, lr.requested_by, lr.status,
		lr.result, lr.requested_at, t.name AS lab_test_name
	FROM lab_requests lr
	JOIN lab_tests t ON t.id = lr.lab_test_id`

func (r *labRequestRepository) List(ctx context.Context, filter model.ListFilter) ([]model.LabRequest, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.AdmissionID > 0 {
		args = append(args, filter.AdmissionID)
		where = append(where, fmt.Sprintf("lr.admission_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("lr.status = $%d", len(args)))
	}

	query := labRequestSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY lr.requested_at DESC, lr.id DESC"

	requests := []model.LabRequest{}
	if err := sqlx.SelectContext(ctx, r.conn(ctx), &requests, query, args...); err != nil {
		return nil, translate("list lab requests", err)
	}
	return requests, nil
}

func (r *labRequestRepository) Get(ctx context.Context, id int64) (*model.LabRequest, error) {
	var req model.LabRequest
	if err := sqlx.GetContext(ctx, r.conn(ctx), &req, labRequestSelect+` WHERE lr.id = $1`, id); err != nil {
		return nil, translate("get lab request", err)
	}
	return &req, nil
}

func (r *labRequestRepository) Create(ctx context.Context, req *model.LabRequest) (int64, error) {
	query := `
		INSERT INTO lab_requests (admission_id, lab_test_id, requested_by, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, requested_at`

	req.Status = model.LabRequested
	err := r.conn(ctx).QueryRowxContext(ctx, query,
		req.AdmissionID,
		req.LabTestID,
		req.RequestedBy,
		req.Status,
	).Scan(&req.ID, &req.RequestedAt)
	r.metrics.ObserveDBOperation("lab_requests.insert", err)
	if err != nil {
		return 0, translate("create lab request", err)
	}
	return req.ID, nil
}

func (r *labRequestRepository) SetStatus(ctx context.Context, id int64, from, to model.LabRequestStatus, result *string) error {
	query := `
		UPDATE lab_requests SET status = $1, result = COALESCE($2, result)
		WHERE id = $3 AND status = $4`

	res, err := r.conn(ctx).ExecContext(ctx, query, to, result, id, from)
	r.metrics.ObserveDBOperation("lab_requests.set_status", err)
	if err != nil {
		return translate("update lab request", err)
	}
	return affected("update lab request", res)
}

func (r *labRequestRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM lab_requests WHERE id = $1`, id)
	r.metrics.ObserveDBOperation("lab_requests.delete", err)
	if err != nil {
		return translate("delete lab request", err)
	}
	return affected("delete lab request", res)
}
