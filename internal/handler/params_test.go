package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-admin/internal/middleware"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
	"github.com/jwalitptl/hospital-admin/pkg/params"
)

func newEngine(maxBody int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.SizeLimit(middleware.SizeLimitConfig{MaxBodySize: maxBody, MaxHeaderSize: 1 << 12}))
	NewDispatcher("floors").
		Handle("list", func(ctx context.Context, p params.Params) (interface{}, error) {
			return p.String("search"), nil
		}).
		RegisterRoutes(r)
	return r
}

func TestChunkedBodyOverLimitIsTooLarge(t *testing.T) {
	r := newEngine(16)

	req := httptest.NewRequest(http.MethodPost, "/floors", strings.NewReader(`{"search":"a very long search term"}`))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "request body exceeds 16 bytes", resp.Error)
}

func TestMalformedBodyIsValidation(t *testing.T) {
	r := newEngine(1 << 10)

	req := httptest.NewRequest(http.MethodPost, "/floors?search=x", strings.NewReader(`["not","an","object"]`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "request body must be a JSON object", resp.Error)
}

func TestQueryOverriddenByJSONBody(t *testing.T) {
	r := newEngine(1 << 10)

	req := httptest.NewRequest(http.MethodPost, "/floors?search=query", strings.NewReader(`{"search":"body"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp httputil.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "body", resp.Data)
}
