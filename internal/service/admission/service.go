package admission

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

type AdmissionServicer interface {
	List(ctx context.Context, status string) ([]model.AdmissionView, error)
	Get(ctx context.Context, id int64) (*model.Admission, error)
	Admit(ctx context.Context, req model.AdmitRequest) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.AdmissionStatus) error
}

type Service struct {
	tx          repository.Transactor
	admissions  repository.AdmissionRepository
	assignments repository.RoomAssignmentRepository
	patients    repository.CatalogRepository[model.Patient]
	doctors     repository.CatalogRepository[model.Doctor]
	validator   validator.Validator
	metrics     *metrics.Metrics
}

func NewService(
	tx repository.Transactor,
	admissions repository.AdmissionRepository,
	assignments repository.RoomAssignmentRepository,
	patients repository.CatalogRepository[model.Patient],
	doctors repository.CatalogRepository[model.Doctor],
	v validator.Validator,
	m *metrics.Metrics,
) *Service {
	return &Service{
		tx:          tx,
		admissions:  admissions,
		assignments: assignments,
		patients:    patients,
		doctors:     doctors,
		validator:   v,
		metrics:     m,
	}
}

func (s *Service) List(ctx context.Context, status string) ([]model.AdmissionView, error) {
	filter := model.ListFilter{}
	if status != "" {
		st, err := model.ParseAdmissionStatus(status)
		if err != nil {
			return nil, apperrors.NewValidation(err.Error(), err)
		}
		filter.Status = string(st)
	}

	list, err := s.admissions.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Admission, error) {
	if id <= 0 {
		return nil, apperrors.NewValidation("id is required", nil)
	}
	a, err := s.admissions.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "Admission not found")
	}
	return a, nil
}

// Admit opens an admission for a patient. A patient has at most one open
// admission; the store's partial unique index enforces it.
func (s *Service) Admit(ctx context.Context, req model.AdmitRequest) (int64, error) {
	if err := s.validator.Validate(&req); err != nil {
		return 0, apperrors.NewValidation(err.Error(), err)
	}
	if req.Status == "" {
		req.Status = model.AdmissionAdmitted
	}
	status, err := model.ParseAdmissionStatus(string(req.Status))
	if err != nil {
		return 0, apperrors.NewValidation(err.Error(), err)
	}
	switch status {
	case model.AdmissionAdmitted, model.AdmissionPending:
		req.Status = status
	case model.AdmissionTransferred, model.AdmissionDischarged, model.AdmissionClosed:
		return 0, apperrors.NewValidation("status must be Admitted or Pending", nil)
	}

	patient, err := s.patients.Get(ctx, req.PatientID)
	if err != nil {
		return 0, notFound(err, "Patient not found")
	}
	if !patient.IsActive {
		return 0, apperrors.NewValidation("Patient is archived", nil)
	}
	doctor, err := s.doctors.Get(ctx, req.DoctorID)
	if err != nil {
		return 0, notFound(err, "Doctor not found")
	}
	if !doctor.IsActive {
		return 0, apperrors.NewValidation("Doctor is archived", nil)
	}

	id, err := s.admissions.Create(ctx, &model.Admission{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		CreatedBy: req.CreatedBy,
		Status:    req.Status,
	})
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrDuplicate):
		return 0, apperrors.NewConflict("Patient already has an open admission", err)
	case errors.Is(err, repository.ErrForeignKey):
		return 0, apperrors.NewNotFound("Referenced record does not exist", err)
	default:
		return 0, apperrors.NewInternal(err)
	}

	s.metrics.ObserveAdmissionChange("none", string(req.Status))
	log.Info().Int64("admission_id", id).Int64("patient_id", req.PatientID).Msg("patient admitted")
	return id, nil
}

// UpdateStatus moves an admission along its lifecycle. An admission cannot
// end while it still holds a room.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status model.AdmissionStatus) error {
	if id <= 0 {
		return apperrors.NewValidation("id is required", nil)
	}
	next, err := model.ParseAdmissionStatus(string(status))
	if err != nil {
		return apperrors.NewValidation(err.Error(), err)
	}

	var from model.AdmissionStatus
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.admissions.GetForUpdate(ctx, id)
		if err != nil {
			return notFound(err, "Admission not found")
		}
		from = current.Status
		if from == next {
			return nil
		}
		if !from.CanTransition(next) {
			return apperrors.NewConflict(fmt.Sprintf("Cannot change admission from %s to %s", from, next), nil)
		}

		if next.IsTerminal() {
			holds, err := s.assignments.ExistsForAdmission(ctx, id)
			if err != nil {
				return apperrors.NewInternal(err)
			}
			if holds {
				return apperrors.NewConflict("Admission still holds a room; release it first", nil)
			}
		}

		if err := s.admissions.UpdateStatus(ctx, id, next); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperrors.NewConflict("Patient already has an open admission", err)
			}
			return notFound(err, "Admission not found")
		}
		return nil
	})
	if err != nil {
		if _, ok := apperrors.As(err); !ok {
			err = apperrors.NewInternal(err)
		}
		log.Debug().Err(err).Int64("admission_id", id).Str("status", string(next)).Msg("admission status change refused")
		return err
	}

	if from != next {
		s.metrics.ObserveAdmissionChange(string(from), string(next))
		log.Info().Int64("admission_id", id).Str("from", string(from)).Str("to", string(next)).Msg("admission status changed")
	}
	return nil
}

func notFound(err error, msg string) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(msg, err)
	}
	return apperrors.NewInternal(err)
}
