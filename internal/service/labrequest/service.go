package labrequest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

type LabRequestServicer interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.LabRequest, error)
	Get(ctx context.Context, id int64) (*model.LabRequest, error)
	Create(ctx context.Context, req *model.LabRequest) (int64, error)
	Complete(ctx context.Context, id int64, result string) error
	Cancel(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	requests   repository.LabRequestRepository
	admissions repository.AdmissionRepository
	validator  validator.Validator
}

func NewService(requests repository.LabRequestRepository, admissions repository.AdmissionRepository, v validator.Validator) *Service {
	return &Service{requests: requests, admissions: admissions, validator: v}
}

func (s *Service) List(ctx context.Context, filter model.ListFilter) ([]model.LabRequest, error) {
	if filter.Status != "" {
		st, err := model.ParseLabRequestStatus(filter.Status)
		if err != nil {
			return nil, apperrors.NewValidation(err.Error(), err)
		}
		filter.Status = string(st)
	}
	list, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.LabRequest, error) {
	if id <= 0 {
		return nil, apperrors.NewValidation("id is required", nil)
	}
	req, err := s.requests.Get(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return req, nil
}

// Create orders a test for an open admission.
func (s *Service) Create(ctx context.Context, req *model.LabRequest) (int64, error) {
	if err := s.validator.Validate(req); err != nil {
		return 0, apperrors.NewValidation(err.Error(), err)
	}

	a, err := s.admissions.Get(ctx, req.AdmissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, apperrors.NewNotFound("Admission not found", err)
		}
		return 0, apperrors.NewInternal(err)
	}
	if a.Status.IsTerminal() {
		return 0, apperrors.NewConflict("Admission is closed", nil)
	}

	req.Status = model.LabRequested
	req.Result = nil
	id, err := s.requests.Create(ctx, req)
	if err != nil {
		return 0, storeError(err)
	}

	log.Debug().Int64("lab_request_id", id).Int64("admission_id", req.AdmissionID).Msg("lab test requested")
	return id, nil
}

func (s *Service) Complete(ctx context.Context, id int64, result string) error {
	result = strings.TrimSpace(result)
	if result == "" {
		return apperrors.NewValidation("result is required", nil)
	}
	return s.transition(ctx, id, model.LabCompleted, &result)
}

func (s *Service) Cancel(ctx context.Context, id int64) error {
	return s.transition(ctx, id, model.LabCancelled, nil)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidation("id is required", nil)
	}
	if err := s.requests.Delete(ctx, id); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *Service) transition(ctx context.Context, id int64, next model.LabRequestStatus, result *string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !current.Status.CanTransition(next) {
		return apperrors.NewConflict(fmt.Sprintf("Lab request is already %s", current.Status), nil)
	}
	err = s.requests.SetStatus(ctx, id, current.Status, next, result)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return storeError(err)
	}

	// Another request moved or removed it after the read above.
	latest, getErr := s.Get(ctx, id)
	if getErr != nil {
		return getErr
	}
	log.Warn().Int64("lab_request_id", id).Str("status", string(latest.Status)).Msg("lab request changed concurrently")
	return apperrors.NewConflict(fmt.Sprintf("Lab request is already %s", latest.Status), err)
}

func storeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("Lab request not found", err)
	case errors.Is(err, repository.ErrForeignKey):
		return apperrors.NewNotFound("Referenced record does not exist", err)
	default:
		return apperrors.NewInternal(err)
	}
}
