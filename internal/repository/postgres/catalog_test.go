package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

func TestCatalogListHidesArchived(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository[model.Specialty](db, nil, model.Specialties)

	mock.ExpectQuery(`SELECT id, name, description, is_active FROM specialties WHERE is_active AND name ILIKE \$1 ORDER BY name`).
		WithArgs("%card%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "is_active"}).
			AddRow(1, "Cardiology", nil, true))

	list, err := repo.List(context.Background(), model.ListFilter{Search: "card"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "Cardiology", list[0].Name)
	assert.True(t, list[0].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogListIncludeArchived(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository[model.Specialty](db, nil, model.Specialties)

	mock.ExpectQuery(`SELECT id, name, description, is_active FROM specialties ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "is_active"}))

	list, err := repo.List(context.Background(), model.ListFilter{IncludeArchived: true})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCatalogCreateBindsNamedColumns(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository[model.Medicine](db, nil, model.Medicines)

	mock.ExpectQuery(`INSERT INTO medicines \(generic_medicine_id, name, unit_price\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
		WithArgs(int64(4), "Amoxicillin 500mg", 12.5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))

	id, err := repo.Create(context.Background(), &model.Medicine{
		GenericMedicineID: 4, Name: "Amoxicillin 500mg", UnitPrice: 12.5,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(21), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogCreateDuplicateName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository[model.Floor](db, nil, model.Floors)

	mock.ExpectQuery(`INSERT INTO floors`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "floors_name_key"})

	_, err := repo.Create(context.Background(), &model.Floor{Name: "Ground"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCatalogUpdateSetsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository[model.Floor](db, nil, model.Floors)

	mock.ExpectExec(`UPDATE floors SET name = \$1, description = \$2 WHERE id = \$3`).
		WithArgs("First", nil, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &model.Floor{Name: "First"}
	require.NoError(t, repo.Update(context.Background(), 3, rec))
	assert.Equal(t, int64(3), rec.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogDeleteReferenced(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository[model.Floor](db, nil, model.Floors)

	mock.ExpectExec(`DELETE FROM floors WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "rooms_floor_id_fkey"})

	assert.ErrorIs(t, repo.Delete(context.Background(), 3), repository.ErrForeignKey)
}

func TestCatalogSetActive(t *testing.T) {
	db, mock := newMockDB(t)
	archivable := NewCatalogRepository[model.Doctor](db, nil, model.Doctors)
	plain := NewCatalogRepository[model.Floor](db, nil, model.Floors)

	mock.ExpectExec(`UPDATE doctors SET is_active = \$1 WHERE id = \$2`).
		WithArgs(false, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, archivable.SetActive(context.Background(), 5, false))
	assert.Error(t, plain.SetActive(context.Background(), 5, false))
	assert.NoError(t, mock.ExpectationsWereMet())
}
