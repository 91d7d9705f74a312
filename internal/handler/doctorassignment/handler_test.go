package doctorassignment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository/repotest"
	"github.com/jwalitptl/hospital-admin/internal/service/doctorassignment"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

func setup(t *testing.T) (*gin.Engine, int64) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repotest.NewStore()
	store.AddAdmission(10, 100, model.AdmissionAdmitted)
	store.AddAdmission(20, 200, model.AdmissionDischarged)
	doctors := repotest.NewCatalog[model.Doctor]()
	doctor, err := doctors.Create(context.Background(), &model.Doctor{SpecialtyID: 1, FullName: "Dr. Grey"})
	require.NoError(t, err)

	svc := doctorassignment.NewService(store.DoctorAssignments(), store.Admissions(), doctors, validator.New())
	r := gin.New()
	NewDispatcher(svc).RegisterRoutes(r)
	return r, doctor
}

func post(t *testing.T, r http.Handler, body string) (int, httputil.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/doctor-assignments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestAssignListUnassign(t *testing.T) {
	r, doctor := setup(t)
	doc := strconv.FormatInt(doctor, 10)

	code, resp := post(t, r, `{"operation":"assign","admission_id":10,"doctor_id":`+doc+`,"role":"Consultant"}`)
	require.Equal(t, http.StatusOK, code, resp.Error)
	id := strconv.FormatInt(int64(resp.Data.(map[string]interface{})["id"].(float64)), 10)

	code, resp = post(t, r, `{"operation":"insert","admission_id":10,"doctor_id":`+doc+`,"role":"Surgeon"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Doctor already assigned to this admission", resp.Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/doctor-assignments?admission_id=10", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data []model.DoctorAssignment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Consultant", list.Data[0].Role)

	code, resp = post(t, r, `{"operation":"unassign","id":`+id+`}`)
	require.Equal(t, http.StatusOK, code, resp.Error)
	assert.Equal(t, "Doctor unassigned", resp.Message)

	code, resp = post(t, r, `{"operation":"delete","id":`+id+`}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Doctor assignment not found", resp.Error)
}

func TestAssignErrors(t *testing.T) {
	r, doctor := setup(t)
	doc := strconv.FormatInt(doctor, 10)

	tests := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{"closed admission", `{"operation":"assign","admission_id":20,"doctor_id":` + doc + `,"role":"Consultant"}`, http.StatusConflict, "Admission is closed"},
		{"unknown doctor", `{"operation":"assign","admission_id":10,"doctor_id":999,"role":"Consultant"}`, http.StatusNotFound, "Doctor not found"},
		{"missing role", `{"operation":"assign","admission_id":10,"doctor_id":` + doc + `}`, http.StatusUnprocessableEntity, "role is required"},
		{"unassign without id", `{"operation":"unassign"}`, http.StatusUnprocessableEntity, "id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := post(t, r, tt.body)
			assert.Equal(t, tt.code, code)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.msg, resp.Error)
		})
	}
}
