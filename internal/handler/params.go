package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/params"
)

// MergeParams collects the request parameters. Later sources win: query
// string, then form body, then JSON body. Errors are application errors: a
// body over the size limit is TooLarge, anything else unreadable is
// Validation.
func MergeParams(c *gin.Context) (params.Params, error) {
	p, err := mergeParams(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.NewTooLarge(fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), err)
		}
		return nil, Validation(err)
	}
	return p, nil
}

func mergeParams(c *gin.Context) (params.Params, error) {
	p := params.Params{}
	for k, vs := range c.Request.URL.Query() {
		if len(vs) > 0 {
			p[k] = vs[0]
		}
	}

	switch c.ContentType() {
	case binding.MIMEPOSTForm:
		if err := c.Request.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form body: %w", err)
		}
		for k, vs := range c.Request.PostForm {
			if len(vs) > 0 {
				p[k] = vs[0]
			}
		}
	case binding.MIMEMultipartPOSTForm:
		form, err := c.MultipartForm()
		if err != nil {
			return nil, fmt.Errorf("invalid form body: %w", err)
		}
		for k, vs := range form.Value {
			if len(vs) > 0 {
				p[k] = vs[0]
			}
		}
	case binding.MIMEJSON, "":
		body, err := readJSON(c)
		if err != nil {
			return nil, err
		}
		p.Merge(body)
	}
	return p, nil
}

func readJSON(c *gin.Context) (map[string]interface{}, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body map[string]interface{}
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.New("request body must be a JSON object")
	}
	return body, nil
}
