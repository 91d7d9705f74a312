package admission

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository/repotest"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

type fixture struct {
	svc      *Service
	store    *repotest.Store
	patients *repotest.Catalog[model.Patient]
	doctors  *repotest.Catalog[model.Doctor]
	metrics  *metrics.Metrics
	patient  int64
	doctor   int64
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{
		store:    repotest.NewStore(),
		patients: repotest.NewCatalog[model.Patient](),
		doctors:  repotest.NewCatalog[model.Doctor](),
		metrics:  metrics.NewMetrics("test", prometheus.NewRegistry()),
	}

	var err error
	f.patient, err = f.patients.Create(ctx, &model.Patient{FullName: "Jane Doe"})
	require.NoError(t, err)
	f.doctor, err = f.doctors.Create(ctx, &model.Doctor{SpecialtyID: 1, FullName: "Dr. House"})
	require.NoError(t, err)

	f.svc = NewService(f.store, f.store.Admissions(), f.store.RoomAssignments(),
		f.patients, f.doctors, validator.New(), f.metrics)
	return f
}

func requireKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, kind), "got %v", err)
}

func TestAdmitDefaultsToAdmitted(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	id, err := f.svc.Admit(ctx, model.AdmitRequest{PatientID: f.patient, DoctorID: f.doctor})
	require.NoError(t, err)

	a, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.AdmissionAdmitted, a.Status)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AdmissionChanges.WithLabelValues("none", "Admitted")))
}

func TestAdmitStatusIsCaseInsensitive(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	id, err := f.svc.Admit(ctx, model.AdmitRequest{PatientID: f.patient, DoctorID: f.doctor, Status: "pending"})
	require.NoError(t, err)

	a, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.AdmissionPending, a.Status)

	_, err = f.svc.Admit(ctx, model.AdmitRequest{PatientID: f.patient, DoctorID: f.doctor, Status: "resting"})
	requireKind(t, err, apperrors.KindValidation)
}

func TestAdmitValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Admit(ctx, model.AdmitRequest{DoctorID: f.doctor})
	requireKind(t, err, apperrors.KindValidation)

	_, err = f.svc.Admit(ctx, model.AdmitRequest{PatientID: f.patient, DoctorID: f.doctor, Status: model.AdmissionClosed})
	requireKind(t, err, apperrors.KindValidation)
}

func TestAdmitUnknownOrArchivedPatient(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Admit(ctx, model.AdmitRequest{PatientID: 999, DoctorID: f.doctor})
	requireKind(t, err, apperrors.KindNotFound)
	assert.Equal(t, "Patient not found", apperrors.PublicMessage(err))

	require.NoError(t, f.patients.SetActive(ctx, f.patient, false))
	_, err = f.svc.Admit(ctx, model.AdmitRequest{PatientID: f.patient, DoctorID: f.doctor})
	requireKind(t, err, apperrors.KindValidation)
}

func TestSecondOpenAdmissionConflicts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Admit(ctx, model.AdmitRequest{PatientID: f.patient, DoctorID: f.doctor})
	require.NoError(t, err)

	_, err = f.svc.Admit(ctx, model.AdmitRequest{PatientID: f.patient, DoctorID: f.doctor, Status: model.AdmissionPending})
	requireKind(t, err, apperrors.KindConflict)
	assert.Equal(t, "Patient already has an open admission", apperrors.PublicMessage(err))
}

func TestUpdateStatusLifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	id, err := f.svc.Admit(ctx, model.AdmitRequest{PatientID: f.patient, DoctorID: f.doctor, Status: model.AdmissionPending})
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateStatus(ctx, id, model.AdmissionAdmitted))
	require.NoError(t, f.svc.UpdateStatus(ctx, id, "transferred"))
	require.NoError(t, f.svc.UpdateStatus(ctx, id, model.AdmissionDischarged))
	require.NoError(t, f.svc.UpdateStatus(ctx, id, model.AdmissionClosed))

	requireKind(t, f.svc.UpdateStatus(ctx, id, model.AdmissionAdmitted), apperrors.KindConflict)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AdmissionChanges.WithLabelValues("Discharged", "Closed")))

	// Once closed, the patient may be admitted again.
	_, err = f.svc.Admit(ctx, model.AdmitRequest{PatientID: f.patient, DoctorID: f.doctor})
	require.NoError(t, err)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := setup(t)
	f.store.AddAdmission(50, f.patient, model.AdmissionAdmitted)

	requireKind(t, f.svc.UpdateStatus(context.Background(), 50, "Sleeping"), apperrors.KindValidation)
}

func TestDischargeRefusedWhileRoomHeld(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.store.AddAdmission(50, f.patient, model.AdmissionAdmitted)
	f.store.AddRoom("101", model.RoomAvailable)

	_, err := f.store.RoomAssignments().Create(ctx, 50, "101", nil)
	require.NoError(t, err)

	err = f.svc.UpdateStatus(ctx, 50, model.AdmissionDischarged)
	requireKind(t, err, apperrors.KindConflict)

	a, _ := f.store.Admission(50)
	assert.Equal(t, model.AdmissionAdmitted, a.Status)
	assert.Equal(t, 1, f.store.Rollbacks)
}

func TestUpdateStatusMissingAdmission(t *testing.T) {
	f := setup(t)

	err := f.svc.UpdateStatus(context.Background(), 77, model.AdmissionDischarged)
	requireKind(t, err, apperrors.KindNotFound)
	assert.Equal(t, "Admission not found", apperrors.PublicMessage(err))
}

func TestListFiltersByStatus(t *testing.T) {
	f := setup(t)
	f.store.AddAdmission(1, 10, model.AdmissionAdmitted)
	f.store.AddAdmission(2, 11, model.AdmissionDischarged)
	f.store.PatientNames[10] = "A"

	list, err := f.svc.List(context.Background(), "admitted")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, "A", list[0].PatientName)
}
