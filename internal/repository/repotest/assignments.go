package repotest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

type assignmentRepo struct{ s *Store }

func (s *Store) RoomAssignments() repository.RoomAssignmentRepository {
	return &assignmentRepo{s: s}
}

func (r *assignmentRepo) List(_ context.Context) ([]model.RoomAssignmentView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("room_assignments.list"); err != nil {
		return nil, err
	}

	out := []model.RoomAssignmentView{}
	for _, a := range r.s.d.assignments {
		view := model.RoomAssignmentView{
			RoomAssignment: a,
			RoomStatus:     r.s.d.rooms[a.RoomNo].Status,
		}
		if adm, ok := r.s.d.admissions[a.AdmissionID]; ok {
			view.PatientName = r.s.PatientNames[adm.PatientID]
		}
		out = append(out, view)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *assignmentRepo) Get(_ context.Context, id int64) (*model.RoomAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.d.assignments[id]
	if !ok {
		return nil, fmt.Errorf("get room assignment: %w", repository.ErrNotFound)
	}
	return &a, nil
}

func (r *assignmentRepo) GetForUpdate(ctx context.Context, id int64) (*model.RoomAssignment, error) {
	if err := requireTx(ctx, fmt.Sprintf("room assignment %d", id)); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	r.s.Locks = append(r.s.Locks, fmt.Sprintf("assignment:%d", id))
	r.s.mu.Unlock()
	return r.Get(ctx, id)
}

func (r *assignmentRepo) Create(_ context.Context, admissionID int64, roomNo string, startDate *time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("room_assignments.insert"); err != nil {
		return 0, err
	}

	if _, ok := r.s.d.rooms[roomNo]; !ok {
		return 0, fmt.Errorf("create room assignment: %w", repository.ErrForeignKey)
	}
	for _, a := range r.s.d.assignments {
		if a.RoomNo == roomNo {
			return 0, fmt.Errorf("create room assignment: %w", repository.ErrDuplicate)
		}
	}

	start := time.Now()
	if startDate != nil {
		start = *startDate
	}
	id := r.s.id()
	r.s.d.assignments[id] = model.RoomAssignment{
		ID:          id,
		AdmissionID: admissionID,
		RoomNo:      roomNo,
		StartDate:   start.Format("2006-01-02"),
	}
	return id, nil
}

func (r *assignmentRepo) Update(_ context.Context, in model.AssignmentInput) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("room_assignments.update"); err != nil {
		return false, err
	}

	a, ok := r.s.d.assignments[in.AssignmentID]
	if !ok {
		return false, nil
	}
	for id, other := range r.s.d.assignments {
		if id != in.AssignmentID && other.RoomNo == in.RoomNo {
			return false, fmt.Errorf("update room assignment: %w", repository.ErrDuplicate)
		}
	}

	next := a
	next.AdmissionID = in.AdmissionID
	next.RoomNo = in.RoomNo
	if in.StartDate != nil {
		next.StartDate = in.StartDate.Format("2006-01-02")
	}
	if next == a {
		return false, nil
	}
	r.s.d.assignments[in.AssignmentID] = next
	return true, nil
}

func (r *assignmentRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("room_assignments.delete"); err != nil {
		return err
	}

	if _, ok := r.s.d.assignments[id]; !ok {
		return fmt.Errorf("delete room assignment: %w", repository.ErrNotFound)
	}
	delete(r.s.d.assignments, id)
	return nil
}

func (r *assignmentRepo) ExistsForAdmission(_ context.Context, admissionID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.d.assignments {
		if a.AdmissionID == admissionID {
			return true, nil
		}
	}
	return false, nil
}
