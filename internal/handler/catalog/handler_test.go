package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository/repotest"
	catalogsvc "github.com/jwalitptl/hospital-admin/internal/service/catalog"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func newRouter() *gin.Engine {
	r := gin.New()
	specialties := repotest.NewCatalog[model.Specialty]()
	specialties.Unique = func(s model.Specialty) string { return s.Name }
	NewDispatcher[model.Specialty](catalogsvc.NewService(model.Specialties, specialties, validator.New())).
		RegisterRoutes(r)
	NewDispatcher[model.Floor](catalogsvc.NewService(model.Floors, repotest.NewCatalog[model.Floor](), validator.New())).
		RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, target, contentType, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestInsertThenList(t *testing.T) {
	r := newRouter()

	code, env := do(t, r, http.MethodPost, "/specialties", "application/json",
		`{"operation":"insert","name":"Cardiology","description":"Heart"}`)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"id":1}`, string(env.Data))

	code, env = do(t, r, http.MethodGet, "/specialties", "", "")
	require.Equal(t, http.StatusOK, code)
	var list []model.Specialty
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Cardiology", list[0].Name)
	assert.True(t, list[0].IsActive)
}

func TestFormBodyAndQueryPrecedence(t *testing.T) {
	r := newRouter()

	form := url.Values{"operation": {"insert"}, "name": {"Ground"}}
	code, env := do(t, r, http.MethodPost, "/floors?operation=list&name=Ignored",
		"application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = do(t, r, http.MethodPost, "/floors?operation=get&id=1", "", "")
	require.Equal(t, http.StatusOK, code, env.Error)
	var floor model.Floor
	require.NoError(t, json.Unmarshal(env.Data, &floor))
	assert.Equal(t, "Ground", floor.Name)
}

func TestErrorsUseEnvelope(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{"unknown operation", `{"operation":"explode"}`, http.StatusUnprocessableEntity, `unknown operation "explode"`},
		{"missing field", `{"operation":"insert"}`, http.StatusUnprocessableEntity, "name is required"},
		{"missing id", `{"operation":"get"}`, http.StatusUnprocessableEntity, "id is required"},
		{"bad id", `{"operation":"get","id":"abc"}`, http.StatusUnprocessableEntity, "id must be an integer"},
		{"not found", `{"operation":"get","id":7}`, http.StatusNotFound, "Specialty not found"},
		{"not an object", `[1,2]`, http.StatusUnprocessableEntity, "request body must be a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, r, http.MethodPost, "/specialties", "application/json", tt.body)
			assert.Equal(t, tt.code, code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.msg, env.Error)
		})
	}
}

func TestDuplicateIsConflict(t *testing.T) {
	r := newRouter()
	body := `{"operation":"insert","name":"Neurology"}`

	code, _ := do(t, r, http.MethodPost, "/specialties", "application/json", body)
	require.Equal(t, http.StatusOK, code)

	code, env := do(t, r, http.MethodPost, "/specialties", "application/json", body)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Specialty already exists", env.Error)
}

func TestSoftDeleteRestoreAndUpdate(t *testing.T) {
	r := newRouter()
	_, _ = do(t, r, http.MethodPost, "/specialties", "application/json", `{"operation":"insert","name":"Oncology"}`)

	code, env := do(t, r, http.MethodPost, "/specialties", "application/json", `{"operation":"softDelete","id":1}`)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, "Specialty archived", env.Message)

	_, env = do(t, r, http.MethodGet, "/specialties?include_archived=true", "", "")
	assert.Contains(t, string(env.Data), `"is_active":false`)

	code, env = do(t, r, http.MethodPost, "/specialties", "application/json", `{"operation":"restore","id":1}`)
	require.Equal(t, http.StatusOK, code, env.Error)

	code, env = do(t, r, http.MethodPost, "/specialties", "application/json", `{"operation":"update","id":1,"name":"Oncology Dept"}`)
	require.Equal(t, http.StatusOK, code, env.Error)
	assert.Equal(t, "Specialty updated", env.Message)

	code, env = do(t, r, http.MethodPost, "/floors", "application/json", `{"operation":"restore","id":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Floor records cannot be restored", env.Error)
}
