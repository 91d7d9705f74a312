package errors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidation("name is required", nil), http.StatusUnprocessableEntity},
		{"not found", NewNotFound("Invalid Room No", nil), http.StatusNotFound},
		{"conflict", NewConflict("Room already occupied", nil), http.StatusConflict},
		{"too large", NewTooLarge("request body exceeds 8 bytes", nil), http.StatusRequestEntityTooLarge},
		{"internal", NewInternal(sql.ErrConnDone), http.StatusInternalServerError},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("create: %w", NewConflict("dup", nil)), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestPublicMessageHidesInternalDetails(t *testing.T) {
	err := NewInternal(fmt.Errorf("pq: relation \"rooms\" does not exist"))
	assert.Equal(t, "internal server error", PublicMessage(err))
	assert.Contains(t, err.Error(), "relation")

	assert.Equal(t, "Invalid Admission ID", PublicMessage(NewNotFound("Invalid Admission ID", sql.ErrNoRows)))
	assert.Equal(t, "internal server error", PublicMessage(fmt.Errorf("raw")))
}

func TestIsKindUnwraps(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewValidation("bad", nil))
	assert.True(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(err, KindConflict))
	assert.ErrorIs(t, NewNotFound("x", sql.ErrNoRows), sql.ErrNoRows)
}
