package apiclient

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// Response is a successful (2xx) backend reply.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Get reads a value from the body using a gjson path. An empty path returns the whole body.
func (r *Response) Get(path string) gjson.Result {
	if path == "" {
		return gjson.ParseBytes(r.Body)
	}
	return gjson.GetBytes(r.Body, path)
}

// Decode unmarshals the value at path (or the whole body when path is empty) into v.
func (r *Response) Decode(path string, v any) error {
	raw := r.Body
	if path != "" {
		res := gjson.GetBytes(r.Body, path)
		if !res.Exists() {
			return errors.Wrapf(ErrMissingField, "path %q", path)
		}
		raw = []byte(res.Raw)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(err, "decode %q", path)
	}
	return nil
}

// OK reports whether the envelope carries a truthy success flag, or a status
// field of 200. Bodies with neither field count as OK.
func (r *Response) OK() bool {
	if s := r.Get("success"); s.Exists() {
		return s.Bool()
	}
	if s := r.Get("status"); s.Exists() && s.Type == gjson.Number {
		return s.Int() == http.StatusOK
	}
	return true
}
