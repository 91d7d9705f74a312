package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

type admissionRepository struct {
	BaseRepository
}

func NewAdmissionRepository(db *sqlx.DB, m *metrics.Metrics) repository.AdmissionRepository {
	return &admissionRepository{BaseRepository: NewBaseRepository(db, m)}
}

const admissionColumns = `id, patient_id, doctor_id, created_by, admitted_at, status`

func (r *admissionRepository) List(ctx context.Context, filter model.ListFilter) ([]model.AdmissionView, error) {
	query := `
		SELECT a.id, a.patient_id, a.doctor_id, a.created_by, a.admitted_at, a.status,
			p.full_name AS patient_name, d.full_name AS doctor_name
		FROM admissions a
		JOIN patients p ON p.id = a.patient_id
		JOIN doctors d ON d.id = a.doctor_id`

	var args []interface{}
	if filter.Status != "" {
		query += ` WHERE a.status = $1`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY a.admitted_at DESC, a.id DESC`

	admissions := []model.AdmissionView{}
	if err := sqlx.SelectContext(ctx, r.conn(ctx), &admissions, query, args...); err != nil {
		return nil, translate("list admissions", err)
	}
	return admissions, nil
}

func (r *admissionRepository) Get(ctx context.Context, id int64) (*model.Admission, error) {
	query := `SELECT ` + admissionColumns + ` FROM admissions WHERE id = $1`

	var admission model.Admission
	if err := sqlx.GetContext(ctx, r.conn(ctx), &admission, query, id); err != nil {
		return nil, translate("get admission", err)
	}
	return &admission, nil
}

func (r *admissionRepository) GetForUpdate(ctx context.Context, id int64) (*model.Admission, error) {
	if !inTx(ctx) {
		return nil, fmt.Errorf("lock admission %d: no transaction in context", id)
	}
	query := `SELECT ` + admissionColumns + ` FROM admissions WHERE id = $1 FOR UPDATE`

	var admission model.Admission
	if err := sqlx.GetContext(ctx, r.conn(ctx), &admission, query, id); err != nil {
		return nil, translate("lock admission", err)
	}
	return &admission, nil
}

func (r *admissionRepository) Create(ctx context.Context, admission *model.Admission) (int64, error) {
	query := `
		INSERT INTO admissions (patient_id, doctor_id, created_by, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, admitted_at`

	err := r.conn(ctx).QueryRowxContext(ctx, query,
		admission.PatientID,
		admission.DoctorID,
		admission.CreatedBy,
		admission.Status,
	).Scan(&admission.ID, &admission.AdmittedAt)
	r.metrics.ObserveDBOperation("admissions.insert", err)
	if err != nil {
		return 0, translate("create admission", err)
	}
	return admission.ID, nil
}

func (r *admissionRepository) UpdateStatus(ctx context.Context, id int64, status model.AdmissionStatus) error {
	res, err := r.conn(ctx).ExecContext(ctx, `UPDATE admissions SET status = $1 WHERE id = $2`, status, id)
	r.metrics.ObserveDBOperation("admissions.update_status", err)
	if err != nil {
		return translate("update admission status", err)
	}
	return affected("update admission status", res)
}
