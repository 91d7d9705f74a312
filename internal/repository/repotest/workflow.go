package repotest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

type billingRepo struct{ s *Store }

func (s *Store) Billing() repository.BillingRepository { return &billingRepo{s: s} }

func (r *billingRepo) ListByAdmission(_ context.Context, admissionID int64) ([]model.BillingItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []model.BillingItem{}
	for _, item := range r.s.d.billing {
		if item.AdmissionID == admissionID {
			item.Amount = float64(item.Quantity) * item.UnitPrice
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *billingRepo) Get(_ context.Context, id int64) (*model.BillingItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.d.billing[id]
	if !ok {
		return nil, fmt.Errorf("get billing item: %w", repository.ErrNotFound)
	}
	item.Amount = float64(item.Quantity) * item.UnitPrice
	return &item, nil
}

func (r *billingRepo) Create(_ context.Context, item *model.BillingItem) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item.ID = r.s.id()
	item.CreatedAt = time.Now()
	r.s.d.billing[item.ID] = *item
	return item.ID, nil
}

func (r *billingRepo) Update(_ context.Context, item *model.BillingItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.d.billing[item.ID]
	if !ok {
		return fmt.Errorf("update billing item: %w", repository.ErrNotFound)
	}
	existing.BillingCategoryID = item.BillingCategoryID
	existing.Description = item.Description
	existing.Quantity = item.Quantity
	existing.UnitPrice = item.UnitPrice
	r.s.d.billing[item.ID] = existing
	return nil
}

func (r *billingRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.d.billing[id]; !ok {
		return fmt.Errorf("delete billing item: %w", repository.ErrNotFound)
	}
	delete(r.s.d.billing, id)
	return nil
}

type labRepo struct{ s *Store }

func (s *Store) LabRequests() repository.LabRequestRepository { return &labRepo{s: s} }

func (r *labRepo) List(_ context.Context, filter model.ListFilter) ([]model.LabRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []model.LabRequest{}
	for _, req := range r.s.d.labRequests {
		if filter.AdmissionID > 0 && req.AdmissionID != filter.AdmissionID {
			continue
		}
		if filter.Status != "" && string(req.Status) != filter.Status {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *labRepo) Get(_ context.Context, id int64) (*model.LabRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.d.labRequests[id]
	if !ok {
		return nil, fmt.Errorf("get lab request: %w", repository.ErrNotFound)
	}
	return &req, nil
}

func (r *labRepo) Create(_ context.Context, req *model.LabRequest) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req.ID = r.s.id()
	req.Status = model.LabRequested
	req.RequestedAt = time.Now()
	r.s.d.labRequests[req.ID] = *req
	return req.ID, nil
}

func (r *labRepo) SetStatus(_ context.Context, id int64, from, to model.LabRequestStatus, result *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.d.labRequests[id]
	if !ok || req.Status != from {
		return fmt.Errorf("update lab request: %w", repository.ErrNotFound)
	}
	req.Status = to
	if result != nil {
		req.Result = result
	}
	r.s.d.labRequests[id] = req
	return nil
}

func (r *labRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.d.labRequests[id]; !ok {
		return fmt.Errorf("delete lab request: %w", repository.ErrNotFound)
	}
	delete(r.s.d.labRequests, id)
	return nil
}

type doctorAssignmentRepo struct{ s *Store }

func (s *Store) DoctorAssignments() repository.DoctorAssignmentRepository {
	return &doctorAssignmentRepo{s: s}
}

func (r *doctorAssignmentRepo) List(_ context.Context, filter model.ListFilter) ([]model.DoctorAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []model.DoctorAssignment{}
	for _, da := range r.s.d.doctorAssignments {
		if filter.AdmissionID > 0 && da.AdmissionID != filter.AdmissionID {
			continue
		}
		da.DoctorName = r.s.DoctorNames[da.DoctorID]
		out = append(out, da)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *doctorAssignmentRepo) Create(_ context.Context, da *model.DoctorAssignment) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.d.doctorAssignments {
		if other.AdmissionID == da.AdmissionID && other.DoctorID == da.DoctorID {
			return 0, fmt.Errorf("create doctor assignment: %w", repository.ErrDuplicate)
		}
	}
	da.ID = r.s.id()
	da.AssignedAt = time.Now()
	r.s.d.doctorAssignments[da.ID] = *da
	return da.ID, nil
}

func (r *doctorAssignmentRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.d.doctorAssignments[id]; !ok {
		return fmt.Errorf("delete doctor assignment: %w", repository.ErrNotFound)
	}
	delete(r.s.d.doctorAssignments, id)
	return nil
}
