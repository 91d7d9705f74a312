package billing

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

type BillingServicer interface {
	Statement(ctx context.Context, admissionID int64) (*model.BillingStatement, error)
	Get(ctx context.Context, id int64) (*model.BillingItem, error)
	Create(ctx context.Context, item *model.BillingItem) (int64, error)
	Update(ctx context.Context, item *model.BillingItem) error
	Delete(ctx context.Context, id int64) error
}

// Service records the line items charged to an admission. Closed
// admissions are read-only.
type Service struct {
	tx         repository.Transactor
	items      repository.BillingRepository
	admissions repository.AdmissionRepository
	validator  validator.Validator
}

func NewService(tx repository.Transactor, items repository.BillingRepository, admissions repository.AdmissionRepository, v validator.Validator) *Service {
	return &Service{tx: tx, items: items, admissions: admissions, validator: v}
}

func (s *Service) Statement(ctx context.Context, admissionID int64) (*model.BillingStatement, error) {
	if admissionID <= 0 {
		return nil, apperrors.NewValidation("admission_id is required", nil)
	}
	if _, err := s.admissions.Get(ctx, admissionID); err != nil {
		return nil, lookupError(err, "Admission not found")
	}

	items, err := s.items.ListByAdmission(ctx, admissionID)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	st := &model.BillingStatement{AdmissionID: admissionID, Items: items}
	for _, item := range items {
		st.Total += item.Amount
	}
	return st, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.BillingItem, error) {
	if id <= 0 {
		return nil, apperrors.NewValidation("id is required", nil)
	}
	item, err := s.items.Get(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Billing item not found")
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, item *model.BillingItem) (int64, error) {
	if err := s.validator.Validate(item); err != nil {
		return 0, apperrors.NewValidation(err.Error(), err)
	}

	var id int64
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.editable(ctx, item.AdmissionID); err != nil {
			return err
		}
		var err error
		id, err = s.items.Create(ctx, item)
		return writeError(err)
	})
	if err != nil {
		return 0, err
	}

	log.Debug().Int64("admission_id", item.AdmissionID).Int64("item_id", id).Msg("billing item added")
	return id, nil
}

func (s *Service) Update(ctx context.Context, item *model.BillingItem) error {
	if item.ID <= 0 {
		return apperrors.NewValidation("id is required", nil)
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.items.Get(ctx, item.ID)
		if err != nil {
			return lookupError(err, "Billing item not found")
		}
		item.AdmissionID = current.AdmissionID
		if err := s.validator.Validate(item); err != nil {
			return apperrors.NewValidation(err.Error(), err)
		}
		if err := s.editable(ctx, current.AdmissionID); err != nil {
			return err
		}
		return writeError(s.items.Update(ctx, item))
	})
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidation("id is required", nil)
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.items.Get(ctx, id)
		if err != nil {
			return lookupError(err, "Billing item not found")
		}
		if err := s.editable(ctx, current.AdmissionID); err != nil {
			return err
		}
		return lookupError(s.items.Delete(ctx, id), "Billing item not found")
	})
}

// editable locks the admission and refuses changes once it is closed.
func (s *Service) editable(ctx context.Context, admissionID int64) error {
	a, err := s.admissions.GetForUpdate(ctx, admissionID)
	if err != nil {
		return lookupError(err, "Admission not found")
	}
	if a.Status == model.AdmissionClosed {
		return apperrors.NewConflict("Admission is closed", nil)
	}
	return nil
}

func lookupError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound(msg, err)
	}
	return apperrors.NewInternal(err)
}

func writeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrForeignKey) {
		return apperrors.NewNotFound("Referenced record does not exist", err)
	}
	return lookupError(err, "Billing item not found")
}
