package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/hospital-admin/internal/cache"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/internal/repository/repotest"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/security"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

func newSpecialties() (*Service[model.Specialty], *repotest.Catalog[model.Specialty]) {
	repo := repotest.NewCatalog[model.Specialty]()
	repo.Unique = func(s model.Specialty) string { return s.Name }
	return NewService[model.Specialty](model.Specialties, repo, validator.New()), repo
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newSpecialties()
	ctx := context.Background()

	id, err := svc.Create(ctx, &model.Specialty{Name: "Cardiology"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", got.Name)
	assert.True(t, got.IsActive)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newSpecialties()

	_, err := svc.Create(context.Background(), &model.Specialty{})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
	assert.Equal(t, "name is required", apperrors.PublicMessage(err))
}

func TestCreateDuplicateIsConflict(t *testing.T) {
	svc, _ := newSpecialties()
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.Specialty{Name: "Neurology"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &model.Specialty{Name: "Neurology"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Equal(t, "Specialty already exists", apperrors.PublicMessage(err))
}

func TestUpdateMissingIsNotFound(t *testing.T) {
	svc, _ := newSpecialties()

	err := svc.Update(context.Background(), 42, &model.Specialty{Name: "X"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	assert.Equal(t, "Specialty not found", apperrors.PublicMessage(err))
}

func TestSoftDeleteAndRestore(t *testing.T) {
	svc, _ := newSpecialties()
	ctx := context.Background()

	id, err := svc.Create(ctx, &model.Specialty{Name: "Oncology"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, id))
	active, err := svc.List(ctx, model.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(ctx, model.ListFilter{IncludeArchived: true})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)

	require.NoError(t, svc.Restore(ctx, id))
	active, err = svc.List(ctx, model.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestHardDeleteAndRestoreRefused(t *testing.T) {
	repo := repotest.NewCatalog[model.Floor]()
	svc := NewService[model.Floor](model.Floors, repo, validator.New())
	ctx := context.Background()

	id, err := svc.Create(ctx, &model.Floor{Name: "Ground"})
	require.NoError(t, err)

	assert.True(t, apperrors.IsKind(svc.Restore(ctx, id), apperrors.KindValidation))

	require.NoError(t, svc.Delete(ctx, id))
	_, err = svc.Get(ctx, id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestDeleteReferencedIsConflict(t *testing.T) {
	repo := repotest.NewCatalog[model.Floor]()
	svc := NewService[model.Floor](model.Floors, repo, validator.New())
	repo.FailOn("delete", repository.ErrForeignKey)

	err := svc.Delete(context.Background(), 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Equal(t, "Floor is still in use", apperrors.PublicMessage(err))
}

func TestListIsCachedUntilWrite(t *testing.T) {
	repo := repotest.NewCatalog[model.Floor]()
	svc := NewService[model.Floor](model.Floors, repo, validator.New(),
		WithCache[model.Floor](cache.NewMemoryCache(time.Minute), time.Minute))
	ctx := context.Background()

	_, err := svc.List(ctx, model.ListFilter{})
	require.NoError(t, err)
	_, err = svc.List(ctx, model.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Lists)

	_, err = svc.Create(ctx, &model.Floor{Name: "First"})
	require.NoError(t, err)

	floors, err := svc.List(ctx, model.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Lists)
	require.Len(t, floors, 1)
	assert.Equal(t, "First", floors[0].Name)
}

func TestListStoreFailureIsInternal(t *testing.T) {
	repo := repotest.NewCatalog[model.Floor]()
	repo.FailOn("list", errors.New("connection refused"))
	svc := NewService[model.Floor](model.Floors, repo, validator.New())

	_, err := svc.List(context.Background(), model.ListFilter{})
	assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
	assert.Equal(t, "internal server error", apperrors.PublicMessage(err))
}

func TestUserPasswordHashing(t *testing.T) {
	repo := repotest.NewCatalog[model.User]()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	svc := NewService[model.User](model.Users, repo, validator.New(), WithHooks(UserHooks(hasher)))
	ctx := context.Background()

	_, err := svc.Create(ctx, &model.User{RoleID: 1, Username: "nurse", FullName: "N. Urse"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.Create(ctx, &model.User{RoleID: 1, Username: "nurse", FullName: "N. Urse", Password: "short"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	id, err := svc.Create(ctx, &model.User{RoleID: 1, Username: "nurse", FullName: "N. Urse", Password: "s3cure-pass"})
	require.NoError(t, err)

	stored, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, stored.Password)
	require.NoError(t, hasher.Compare(stored.PasswordHash, "s3cure-pass"))

	// Updating without a password keeps the existing hash.
	require.NoError(t, svc.Update(ctx, id, &model.User{RoleID: 2, Username: "nurse", FullName: "Nina Urse"}))
	updated, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, stored.PasswordHash, updated.PasswordHash)
	assert.Equal(t, int64(2), updated.RoleID)
}
