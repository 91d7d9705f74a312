package room

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository/repotest"
	"github.com/jwalitptl/hospital-admin/internal/service/room"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

func setup() (*gin.Engine, *repotest.Store) {
	gin.SetMode(gin.TestMode)
	store := repotest.NewStore()
	r := gin.New()
	NewDispatcher(room.NewService(store, store.Rooms(), validator.New())).RegisterRoutes(r)
	return r, store
}

func post(t *testing.T, r http.Handler, body string) (int, httputil.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/rooms", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestInsertAndGet(t *testing.T) {
	r, _ := setup()

	code, resp := post(t, r, `{"operation":"insert","room_no":"301","category_id":2,"floor_id":3}`)
	require.Equal(t, http.StatusOK, code, resp.Error)

	code, resp = post(t, r, `{"operation":"get","room_no":"301"}`)
	require.Equal(t, http.StatusOK, code, resp.Error)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Available", data["status"])
}

func TestDeleteOccupiedIsConflict(t *testing.T) {
	r, store := setup()
	store.AddRoom("302", model.RoomOccupied)

	code, resp := post(t, r, `{"operation":"delete","room_no":"302"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "Room is occupied", resp.Error)
}

func TestStatusCannotBeWritten(t *testing.T) {
	r, store := setup()
	store.AddRoom("303", model.RoomAvailable)

	code, resp := post(t, r, `{"operation":"update","room_no":"303","category_id":1,"floor_id":1,"status":"Occupied"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "status is managed by room assignments", resp.Error)
}
