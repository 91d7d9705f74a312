// Package params holds request parameters merged from the query string, form
// body and JSON body, and decodes them into typed records.
package params

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Params is a merged set of request parameters.
type Params map[string]interface{}

// Merge copies every entry of src into p, overwriting existing keys.
func (p Params) Merge(src map[string]interface{}) {
	for k, v := range src {
		p[k] = v
	}
}

// Has reports whether key is present and not blank.
func (p Params) Has(key string) bool {
	v, ok := p[key]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// String returns the parameter as a trimmed string, or "" when absent.
func (p Params) String(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// Int64 parses the parameter as an integer. ok is false when it is absent.
func (p Params) Int64(key string) (n int64, ok bool, err error) {
	s := p.String(key)
	if s == "" {
		return 0, false, nil
	}
	n, err = strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, true, fmt.Errorf("%s must be an integer", key)
	}
	return n, true, nil
}

// RequireInt64 parses a mandatory positive identifier.
func (p Params) RequireInt64(key string) (int64, error) {
	n, ok, err := p.Int64(key)
	if err != nil {
		return 0, err
	}
	if !ok || n <= 0 {
		return 0, fmt.Errorf("%s is required", key)
	}
	return n, nil
}

// Bool parses a boolean flag; absent or unparsable values are false.
func (p Params) Bool(key string) bool {
	b, err := strconv.ParseBool(p.String(key))
	return err == nil && b
}

// Date parses an optional YYYY-MM-DD parameter.
func (p Params) Date(key string) (*time.Time, error) {
	s := p.String(key)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date in YYYY-MM-DD format", key)
	}
	return &t, nil
}

// Decode fills out (a pointer to struct) using its json tags. String inputs
// are converted to the target field types. Blank strings count as absent, so
// optional fields posted empty by a form stay nil.
func (p Params) Decode(out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Squash:           true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jsonNumberHook,
			mapstructure.StringToTimeHookFunc(DateLayout),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(p.present()); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	return nil
}

// present returns the parameters without blank string values.
func (p Params) present() map[string]interface{} {
	out := make(map[string]interface{}, len(p))
	for k, v := range p {
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		out[k] = v
	}
	return out
}

func jsonNumberHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	n, ok := data.(json.Number)
	if !ok {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Float32, reflect.Float64:
		return n.Float64()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return n.Int64()
	default:
		return n.String(), nil
	}
}
