package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

func TestLabRequestSetStatusOnlyFromExpectedStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLabRequestRepository(db, nil)
	result := "negative"

	mock.ExpectExec(`UPDATE lab_requests SET status = \$1, result = COALESCE\(\$2, result\)\s+WHERE id = \$3 AND status = \$4`).
		WithArgs(model.LabCompleted, &result, int64(5), model.LabRequested).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.SetStatus(context.Background(), 5, model.LabRequested, model.LabCompleted, &result))

	mock.ExpectExec(`UPDATE lab_requests`).
		WithArgs(model.LabCancelled, nil, int64(5), model.LabRequested).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.SetStatus(context.Background(), 5, model.LabRequested, model.LabCancelled, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
