package doctorassignment

import (
	"context"
	"errors"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

type DoctorAssignmentServicer interface {
	List(ctx context.Context, admissionID int64) ([]model.DoctorAssignment, error)
	Assign(ctx context.Context, da *model.DoctorAssignment) (int64, error)
	Unassign(ctx context.Context, id int64) error
}

// Service attaches consulting doctors to an admission.
type Service struct {
	assignments repository.DoctorAssignmentRepository
	admissions  repository.AdmissionRepository
	doctors     repository.CatalogRepository[model.Doctor]
	validator   validator.Validator
}

func NewService(
	assignments repository.DoctorAssignmentRepository,
	admissions repository.AdmissionRepository,
	doctors repository.CatalogRepository[model.Doctor],
	v validator.Validator,
) *Service {
	return &Service{assignments: assignments, admissions: admissions, doctors: doctors, validator: v}
}

func (s *Service) List(ctx context.Context, admissionID int64) ([]model.DoctorAssignment, error) {
	list, err := s.assignments.List(ctx, model.ListFilter{AdmissionID: admissionID})
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return list, nil
}

func (s *Service) Assign(ctx context.Context, da *model.DoctorAssignment) (int64, error) {
	if err := s.validator.Validate(da); err != nil {
		return 0, apperrors.NewValidation(err.Error(), err)
	}

	a, err := s.admissions.Get(ctx, da.AdmissionID)
	if err != nil {
		return 0, lookupError(err, "Admission not found")
	}
	if a.Status.IsTerminal() {
		return 0, apperrors.NewConflict("Admission is closed", nil)
	}
	doctor, err := s.doctors.Get(ctx, da.DoctorID)
	if err != nil {
		return 0, lookupError(err, "Doctor not found")
	}
	if !doctor.IsActive {
		return 0, apperrors.NewValidation("Doctor is archived", nil)
	}

	id, err := s.assignments.Create(ctx, da)
	switch {
	case err == nil:
		return id, nil
	case errors.Is(err, repository.ErrDuplicate):
		return 0, apperrors.NewConflict("Doctor already assigned to this admission", err)
	default:
		return 0, lookupError(err, "Referenced record does not exist")
	}
}

func (s *Service) Unassign(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidation("id is required", nil)
	}
	return lookupError(s.assignments.Delete(ctx, id), "Doctor assignment not found")
}

func lookupError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrForeignKey) {
		return apperrors.NewNotFound(msg, err)
	}
	return apperrors.NewInternal(err)
}
