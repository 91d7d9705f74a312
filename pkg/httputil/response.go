package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-admin/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Notice  string      `json:"notice,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response. Internal errors are logged with
// their cause and reported to the client with a generic message.
func RespondWithError(c *gin.Context, err error) {
	status := errors.StatusCode(err)
	logError(c, status, err)

	c.JSON(status, Response{
		Success: false,
		Error:   errors.PublicMessage(err),
	})
}

// RespondWithBareError is used by read-only endpoints, which answer with
// {"error": "..."} and no success flag.
func RespondWithBareError(c *gin.Context, err error) {
	status := errors.StatusCode(err)
	logError(c, status, err)

	c.JSON(status, gin.H{"error": errors.PublicMessage(err)})
}

func logError(c *gin.Context, status int, err error) {
	event := log.Debug()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Msg("request failed")
}
