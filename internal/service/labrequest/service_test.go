package labrequest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/internal/repository/repotest"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

func setup() *Service {
	store := repotest.NewStore()
	store.AddAdmission(10, 100, model.AdmissionAdmitted)
	store.AddAdmission(20, 200, model.AdmissionDischarged)
	return NewService(store.LabRequests(), store.Admissions(), validator.New())
}

func TestRequestAndComplete(t *testing.T) {
	svc := setup()
	ctx := context.Background()

	id, err := svc.Create(ctx, &model.LabRequest{AdmissionID: 10, LabTestID: 3, RequestedBy: 1})
	require.NoError(t, err)

	req, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.LabRequested, req.Status)

	assert.True(t, apperrors.IsKind(svc.Complete(ctx, id, "  "), apperrors.KindValidation))
	require.NoError(t, svc.Complete(ctx, id, "Hb 13.5 g/dL"))

	req, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.LabCompleted, req.Status)
	require.NotNil(t, req.Result)
	assert.Equal(t, "Hb 13.5 g/dL", *req.Result)

	err = svc.Cancel(ctx, id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Equal(t, "Lab request is already Completed", apperrors.PublicMessage(err))
}

func TestRequestForClosedAdmission(t *testing.T) {
	svc := setup()

	_, err := svc.Create(context.Background(), &model.LabRequest{AdmissionID: 20, LabTestID: 3, RequestedBy: 1})
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = svc.Create(context.Background(), &model.LabRequest{AdmissionID: 30, LabTestID: 3, RequestedBy: 1})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	_, err = svc.Create(context.Background(), &model.LabRequest{AdmissionID: 10, RequestedBy: 1})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestListByAdmissionAndStatus(t *testing.T) {
	svc := setup()
	ctx := context.Background()

	first, err := svc.Create(ctx, &model.LabRequest{AdmissionID: 10, LabTestID: 1, RequestedBy: 1})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &model.LabRequest{AdmissionID: 10, LabTestID: 2, RequestedBy: 1})
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, first))

	all, err := svc.List(ctx, model.ListFilter{AdmissionID: 10})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cancelled, err := svc.List(ctx, model.ListFilter{AdmissionID: 10, Status: "cancelled"})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, first, cancelled[0].ID)
}

func TestDeleteMissing(t *testing.T) {
	svc := setup()
	err := svc.Delete(context.Background(), 5)
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

// staleReads serves the first Get from a snapshot taken before another
// request changed the row.
type staleReads struct {
	repository.LabRequestRepository
	stale *model.LabRequest
}

func (r *staleReads) Get(ctx context.Context, id int64) (*model.LabRequest, error) {
	if r.stale != nil {
		req := r.stale
		r.stale = nil
		return req, nil
	}
	return r.LabRequestRepository.Get(ctx, id)
}

func TestTransitionRefusedAfterConcurrentChange(t *testing.T) {
	store := repotest.NewStore()
	store.AddAdmission(10, 100, model.AdmissionAdmitted)
	ctx := context.Background()

	requests := &staleReads{LabRequestRepository: store.LabRequests()}
	svc := NewService(requests, store.Admissions(), validator.New())

	id, err := svc.Create(ctx, &model.LabRequest{AdmissionID: 10, LabTestID: 3, RequestedBy: 1})
	require.NoError(t, err)

	snapshot, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.NoError(t, svc.Complete(ctx, id, "negative"))

	requests.stale = snapshot
	err = svc.Cancel(ctx, id)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.Equal(t, "Lab request is already Completed", apperrors.PublicMessage(err))

	req, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.LabCompleted, req.Status)
	require.NotNil(t, req.Result)
	assert.Equal(t, "negative", *req.Result)
}
