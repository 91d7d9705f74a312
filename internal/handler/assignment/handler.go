// Package assignment exposes the room assignment workflow. Unlike the other
// resources it dispatches on the HTTP verb.
package assignment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-admin/internal/handler"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/service/assignment"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
	"github.com/jwalitptl/hospital-admin/pkg/params"
)

type Handler struct {
	service assignment.AssignmentServicer
}

func NewHandler(service assignment.AssignmentServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/room-assignments", h.List)
	r.POST("/room-assignments", h.Create)
	r.PUT("/room-assignments", h.Update)
	r.DELETE("/room-assignments", h.Delete)
}

// List answers with a bare array.
func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithBareError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) Create(c *gin.Context) {
	in, err := input(c, false)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	id, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "assignmentid": id})
}

func (h *Handler) Update(c *gin.Context) {
	in, err := input(c, true)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	changed, err := h.service.Update(c.Request.Context(), in)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	resp := httputil.Response{Success: true}
	if !changed {
		resp.Notice = assignment.NoChangesNotice
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Delete(c *gin.Context) {
	p, err := handler.MergeParams(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	id, _, err := p.Int64("assignmentid")
	if err != nil {
		httputil.RespondWithError(c, handler.Validation(err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, httputil.Response{Success: true, Message: "Room assignment deleted"})
}

// input parses the assignment fields. Missing identifiers are left zero for
// the service to report.
func input(c *gin.Context, withID bool) (model.AssignmentInput, error) {
	var in model.AssignmentInput
	p, err := handler.MergeParams(c)
	if err != nil {
		return in, err
	}

	if withID {
		if in.AssignmentID, err = int64Param(p, "assignmentid"); err != nil {
			return in, err
		}
	}
	if in.AdmissionID, err = int64Param(p, "admissionid"); err != nil {
		return in, err
	}
	in.RoomNo = p.String("room_no")
	if in.StartDate, err = p.Date("start_date"); err != nil {
		return in, handler.Validation(err)
	}
	return in, nil
}

func int64Param(p params.Params, key string) (int64, error) {
	n, _, err := p.Int64(key)
	if err != nil {
		return 0, handler.Validation(err)
	}
	return n, nil
}
