package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

type doctorAssignmentRepository struct {
	BaseRepository
}

func NewDoctorAssignmentRepository(db *sqlx.DB, m *metrics.Metrics) repository.DoctorAssignmentRepository {
	return &doctorAssignmentRepository{BaseRepository: NewBaseRepository(db, m)}
}

func (r *doctorAssignmentRepository) List(ctx context.Context, filter model.ListFilter) ([]model.DoctorAssignment, error) {
	query := `
		SELECT da.id, da.admission_id, da.doctor_id, da.role, da.assigned_at,
			d.full_name AS doctor_name
		FROM doctor_assignments da
		JOIN doctors d ON d.id = da.doctor_id`

	var args []interface{}
	if filter.AdmissionID > 0 {
		query += ` WHERE da.admission_id = $1`
		args = append(args, filter.AdmissionID)
	}
	query += ` ORDER BY da.assigned_at DESC, da.id DESC`

	assignments := []model.DoctorAssignment{}
	if err := sqlx.SelectContext(ctx, r.conn(ctx), &assignments, query, args...); err != nil {
		return nil, translate("list doctor assignments", err)
	}
	return assignments, nil
}

func (r *doctorAssignmentRepository) Create(ctx context.Context, da *model.DoctorAssignment) (int64, error) {
	query := `
		INSERT INTO doctor_assignments (admission_id, doctor_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, assigned_at`

	err := r.conn(ctx).QueryRowxContext(ctx, query, da.AdmissionID, da.DoctorID, da.Role).
		Scan(&da.ID, &da.AssignedAt)
	r.metrics.ObserveDBOperation("doctor_assignments.insert", err)
	if err != nil {
		return 0, translate("create doctor assignment", err)
	}
	return da.ID, nil
}

func (r *doctorAssignmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM doctor_assignments WHERE id = $1`, id)
	r.metrics.ObserveDBOperation("doctor_assignments.delete", err)
	if err != nil {
		return translate("delete doctor assignment", err)
	}
	return affected("delete doctor assignment", res)
}
