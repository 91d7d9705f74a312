package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

type roomAssignmentRepository struct {
	BaseRepository
}

func NewRoomAssignmentRepository(db *sqlx.DB, m *metrics.Metrics) repository.RoomAssignmentRepository {
	return &roomAssignmentRepository{BaseRepository: NewBaseRepository(db, m)}
}

const assignmentColumns = `assignment_id, admission_id, room_no, to_char(start_date, 'YYYY-MM-DD') AS start_date`

func (r *roomAssignmentRepository) List(ctx context.Context) ([]model.RoomAssignmentView, error) {
	query := `
		SELECT ra.assignment_id, ra.admission_id, ra.room_no,
			to_char(ra.start_date, 'YYYY-MM-DD') AS start_date,
			p.full_name AS patient_name,
			r.status AS room_status,
			c.name AS category_name,
			f.name AS floor_name
		FROM room_assignments ra
		JOIN admissions a ON a.id = ra.admission_id
		JOIN patients p ON p.id = a.patient_id
		JOIN rooms r ON r.room_no = ra.room_no
		JOIN room_categories c ON c.id = r.category_id
		JOIN floors f ON f.id = r.floor_id
		ORDER BY ra.assignment_id DESC`

	assignments := []model.RoomAssignmentView{}
	if err := sqlx.SelectContext(ctx, r.conn(ctx), &assignments, query); err != nil {
		return nil, translate("list room assignments", err)
	}
	return assignments, nil
}

func (r *roomAssignmentRepository) Get(ctx context.Context, id int64) (*model.RoomAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM room_assignments WHERE assignment_id = $1`

	var a model.RoomAssignment
	if err := sqlx.GetContext(ctx, r.conn(ctx), &a, query, id); err != nil {
		return nil, translate("get room assignment", err)
	}
	return &a, nil
}

func (r *roomAssignmentRepository) GetForUpdate(ctx context.Context, id int64) (*model.RoomAssignment, error) {
	if !inTx(ctx) {
		return nil, fmt.Errorf("lock room assignment %d: no transaction in context", id)
	}
	query := `SELECT ` + assignmentColumns + ` FROM room_assignments WHERE assignment_id = $1 FOR UPDATE`

	var a model.RoomAssignment
	if err := sqlx.GetContext(ctx, r.conn(ctx), &a, query, id); err != nil {
		return nil, translate("lock room assignment", err)
	}
	return &a, nil
}

func (r *roomAssignmentRepository) Create(ctx context.Context, admissionID int64, roomNo string, startDate *time.Time) (int64, error) {
	query := `
		INSERT INTO room_assignments (admission_id, room_no, start_date)
		VALUES ($1, $2, COALESCE($3::date, CURRENT_DATE))
		RETURNING assignment_id`

	var id int64
	err := r.conn(ctx).QueryRowxContext(ctx, query, admissionID, roomNo, startDate).Scan(&id)
	r.metrics.ObserveDBOperation("room_assignments.insert", err)
	if err != nil {
		return 0, translate("create room assignment", err)
	}
	return id, nil
}

// Update only touches the row when a value differs, so identical input
// reports changed == false.
func (r *roomAssignmentRepository) Update(ctx context.Context, in model.AssignmentInput) (bool, error) {
	query := `
		UPDATE room_assignments
		SET admission_id = $2,
			room_no = $3,
			start_date = COALESCE($4::date, start_date)
		WHERE assignment_id = $1
			AND (admission_id IS DISTINCT FROM $2
				OR room_no IS DISTINCT FROM $3
				OR start_date IS DISTINCT FROM COALESCE($4::date, start_date))`

	res, err := r.conn(ctx).ExecContext(ctx, query, in.AssignmentID, in.AdmissionID, in.RoomNo, in.StartDate)
	r.metrics.ObserveDBOperation("room_assignments.update", err)
	if err != nil {
		return false, translate("update room assignment", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to update room assignment: %w", err)
	}
	return n > 0, nil
}

func (r *roomAssignmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM room_assignments WHERE assignment_id = $1`, id)
	r.metrics.ObserveDBOperation("room_assignments.delete", err)
	if err != nil {
		return translate("delete room assignment", err)
	}
	return affected("delete room assignment", res)
}

func (r *roomAssignmentRepository) ExistsForAdmission(ctx context.Context, admissionID int64) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.conn(ctx), &exists,
		`SELECT EXISTS (SELECT 1 FROM room_assignments WHERE admission_id = $1)`, admissionID)
	if err != nil {
		return false, translate("check room assignments", err)
	}
	return exists, nil
}
