// Package handler holds the HTTP plumbing shared by the resource handlers.
// Most resources expose one endpoint that accepts GET and POST and picks the
// operation from the merged request parameters.
package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/httputil"
	"github.com/jwalitptl/hospital-admin/pkg/params"
)

// DefaultOperation runs when the request names none.
const DefaultOperation = "list"

// Operation executes one named action against the merged parameters and
// returns the payload for the data field.
type Operation func(ctx context.Context, p params.Params) (interface{}, error)

// Message is a payload rendered into the message field instead of data.
type Message string

// Dispatcher routes a resource's requests to its operations.
type Dispatcher struct {
	resource string
	ops      map[string]Operation
}

func NewDispatcher(resource string) *Dispatcher {
	return &Dispatcher{resource: resource, ops: make(map[string]Operation)}
}

func (d *Dispatcher) Resource() string {
	return d.resource
}

// Handle registers op under name and any aliases.
func (d *Dispatcher) Handle(name string, op Operation, aliases ...string) *Dispatcher {
	d.ops[name] = op
	for _, alias := range aliases {
		d.ops[alias] = op
	}
	return d
}

func (d *Dispatcher) RegisterRoutes(r gin.IRoutes) {
	path := "/" + d.resource
	r.GET(path, d.Serve)
	r.POST(path, d.Serve)
}

func (d *Dispatcher) Serve(c *gin.Context) {
	p, err := MergeParams(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	name := p.String("operation")
	if name == "" {
		name = DefaultOperation
	}
	op, ok := d.ops[name]
	if !ok {
		httputil.RespondWithError(c, apperrors.NewValidation(fmt.Sprintf("unknown operation %q", name), nil))
		return
	}

	result, err := op(c.Request.Context(), p)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if msg, ok := result.(Message); ok {
		c.JSON(http.StatusOK, httputil.Response{Success: true, Message: string(msg)})
		return
	}
	httputil.RespondWithSuccess(c, result)
}

// Validation wraps a parameter parsing error.
func Validation(err error) error {
	return apperrors.NewValidation(err.Error(), err)
}

// ID reads the mandatory id parameter.
func ID(p params.Params) (int64, error) {
	id, err := p.RequireInt64("id")
	if err != nil {
		return 0, Validation(err)
	}
	return id, nil
}

// Created is the payload of a successful insert.
func Created(id int64) gin.H {
	return gin.H{"id": id}
}
