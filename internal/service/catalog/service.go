package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-admin/internal/cache"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

// Hooks let an entity adjust a record before it is written. existing is
// the stored record on update and nil on create.
type Hooks[T any] struct {
	BeforeWrite func(ctx context.Context, rec *T, existing *T) error
}

// Service implements list/get/insert/update/delete/restore for one
// master-data entity. Lists are served from cache and invalidated on write.
type Service[T any] struct {
	entity    model.Entity
	repo      repository.CatalogRepository[T]
	validator validator.Validator
	cache     cache.Cache
	ttl       time.Duration
	hooks     Hooks[T]
	metrics   *metrics.Metrics
}

type Option[T any] func(*Service[T])

func WithCache[T any](c cache.Cache, ttl time.Duration) Option[T] {
	return func(s *Service[T]) {
		s.cache = c
		s.ttl = ttl
	}
}

func WithHooks[T any](h Hooks[T]) Option[T] {
	return func(s *Service[T]) { s.hooks = h }
}

func WithMetrics[T any](m *metrics.Metrics) Option[T] {
	return func(s *Service[T]) { s.metrics = m }
}

func NewService[T any](entity model.Entity, repo repository.CatalogRepository[T], v validator.Validator, opts ...Option[T]) *Service[T] {
	s := &Service[T]{
		entity:    entity,
		repo:      repo,
		validator: v,
		cache:     cache.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service[T]) Entity() model.Entity {
	return s.entity
}

func (s *Service[T]) List(ctx context.Context, filter model.ListFilter) ([]T, error) {
	key := cache.Key(s.entity.Name, "list", filter.Search, strconv.FormatBool(filter.IncludeArchived))

	var records []T
	err := cache.GetJSON(ctx, s.cache, key, &records)
	if err == nil {
		s.metrics.ObserveCache(true)
		return records, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	s.metrics.ObserveCache(false)

	records, err = s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	if err := cache.SetJSON(ctx, s.cache, key, records, s.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return records, nil
}

func (s *Service[T]) Get(ctx context.Context, id int64) (*T, error) {
	if id <= 0 {
		return nil, apperrors.NewValidation("id is required", nil)
	}
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "get")
	}
	return rec, nil
}

func (s *Service[T]) Create(ctx context.Context, rec *T) (int64, error) {
	if s.hooks.BeforeWrite != nil {
		if err := s.hooks.BeforeWrite(ctx, rec, nil); err != nil {
			return 0, err
		}
	}
	if err := s.validator.Validate(rec); err != nil {
		return 0, apperrors.NewValidation(err.Error(), err)
	}

	id, err := s.repo.Create(ctx, rec)
	if err != nil {
		return 0, s.storeError(err, "create")
	}

	s.invalidate(ctx)
	log.Debug().Str("entity", s.entity.Name).Int64("id", id).Msg("record created")
	return id, nil
}

func (s *Service[T]) Update(ctx context.Context, id int64, rec *T) error {
	if id <= 0 {
		return apperrors.NewValidation("id is required", nil)
	}
	if s.hooks.BeforeWrite != nil {
		existing, err := s.repo.Get(ctx, id)
		if err != nil {
			return s.storeError(err, "update")
		}
		if err := s.hooks.BeforeWrite(ctx, rec, existing); err != nil {
			return err
		}
	}
	if err := s.validator.Validate(rec); err != nil {
		return apperrors.NewValidation(err.Error(), err)
	}

	if err := s.repo.Update(ctx, id, rec); err != nil {
		return s.storeError(err, "update")
	}

	s.invalidate(ctx)
	return nil
}

// Delete archives archivable records and removes the others.
func (s *Service[T]) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidation("id is required", nil)
	}

	var err error
	if s.entity.Archivable {
		err = s.repo.SetActive(ctx, id, false)
	} else {
		err = s.repo.Delete(ctx, id)
	}
	if err != nil {
		return s.storeError(err, "delete")
	}

	s.invalidate(ctx)
	return nil
}

func (s *Service[T]) Restore(ctx context.Context, id int64) error {
	if !s.entity.Archivable {
		return apperrors.NewValidation(fmt.Sprintf("%s records cannot be restored", s.entity.Label), nil)
	}
	if id <= 0 {
		return apperrors.NewValidation("id is required", nil)
	}

	if err := s.repo.SetActive(ctx, id, true); err != nil {
		return s.storeError(err, "restore")
	}

	s.invalidate(ctx)
	return nil
}

func (s *Service[T]) invalidate(ctx context.Context) {
	if err := s.cache.Clear(ctx, cache.Key(s.entity.Name, "")); err != nil {
		log.Warn().Err(err).Str("entity", s.entity.Name).Msg("cache invalidation failed")
	}
}

func (s *Service[T]) storeError(err error, op string) error {
	if _, ok := apperrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(s.entity.Label+" not found", err)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict(s.entity.Label+" already exists", err)
	case errors.Is(err, repository.ErrForeignKey):
		if op == "delete" {
			return apperrors.NewConflict(s.entity.Label+" is still in use", err)
		}
		return apperrors.NewNotFound("Referenced record does not exist", err)
	default:
		return apperrors.NewInternal(err)
	}
}
