package repotest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

type admissionRepo struct{ s *Store }

func (s *Store) Admissions() repository.AdmissionRepository { return &admissionRepo{s: s} }

func (r *admissionRepo) List(_ context.Context, filter model.ListFilter) ([]model.AdmissionView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []model.AdmissionView{}
	for _, a := range r.s.d.admissions {
		if filter.Status != "" && string(a.Status) != filter.Status {
			continue
		}
		out = append(out, model.AdmissionView{
			Admission:   a,
			PatientName: r.s.PatientNames[a.PatientID],
			DoctorName:  r.s.DoctorNames[a.DoctorID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *admissionRepo) Get(_ context.Context, id int64) (*model.Admission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("admissions.get"); err != nil {
		return nil, err
	}

	a, ok := r.s.d.admissions[id]
	if !ok {
		return nil, fmt.Errorf("get admission: %w", repository.ErrNotFound)
	}
	return &a, nil
}

func (r *admissionRepo) GetForUpdate(ctx context.Context, id int64) (*model.Admission, error) {
	if err := requireTx(ctx, fmt.Sprintf("admission %d", id)); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	r.s.Locks = append(r.s.Locks, fmt.Sprintf("admission:%d", id))
	r.s.mu.Unlock()
	return r.Get(ctx, id)
}

func (r *admissionRepo) Create(_ context.Context, admission *model.Admission) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.d.admissions {
		if a.PatientID == admission.PatientID && !a.Status.IsTerminal() {
			return 0, fmt.Errorf("create admission: %w", repository.ErrDuplicate)
		}
	}
	admission.ID = r.s.id()
	admission.AdmittedAt = time.Now()
	r.s.d.admissions[admission.ID] = *admission
	return admission.ID, nil
}

func (r *admissionRepo) UpdateStatus(_ context.Context, id int64, status model.AdmissionStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("admissions.update_status"); err != nil {
		return err
	}

	a, ok := r.s.d.admissions[id]
	if !ok {
		return fmt.Errorf("update admission status: %w", repository.ErrNotFound)
	}
	if !status.IsTerminal() {
		for _, other := range r.s.d.admissions {
			if other.ID != id && other.PatientID == a.PatientID && !other.Status.IsTerminal() {
				return fmt.Errorf("update admission status: %w", repository.ErrDuplicate)
			}
		}
	}
	a.Status = status
	r.s.d.admissions[id] = a
	return nil
}
