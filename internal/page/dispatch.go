package page

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"resume-web/internal/modal"
	"resume-web/internal/shared/metrics"
	"resume-web/internal/shared/telemetry"
	"resume-web/internal/validate"
)

// EventTooLarge is dispatched in place of a form whose body exceeded the
// upload limit and could not be read.
const EventTooLarge = "upload.too_large"

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrBusy         = errors.New("an analysis is already in progress")
)

// Event is one user interaction posted by a rendered form.
type Event struct {
	Name string
	Form url.Values
	File *validate.Upload
}

// Value returns a raw form value.
func (e Event) Value(key string) string {
	return e.Form.Get(key)
}

// Trimmed returns a form value without surrounding whitespace.
func (e Event) Trimmed(key string) string {
	return strings.TrimSpace(e.Form.Get(key))
}

// HandlerFunc reacts to one event. Failures the user should see are reported
// through the state; a returned error is unexpected.
type HandlerFunc func(ctx context.Context, st *State, ev Event) error

// Dispatch maps event names to handlers.
type Dispatch map[string]HandlerFunc

// Common returns the handlers every page understands.
func Common() Dispatch {
	return Dispatch{
		modal.CloseEvent: func(_ context.Context, st *State, _ Event) error {
			st.Doc.Modal.Close()
			return nil
		},
		EventTooLarge: func(_ context.Context, st *State, _ Event) error {
			st.Toast(ToastError, "Upload too large", validate.MsgUploadTooLarge)
			return nil
		},
	}
}

// With returns d extended by other. Entries in d win.
func (d Dispatch) With(other Dispatch) Dispatch {
	out := make(Dispatch, len(d)+len(other))
	for k, v := range other {
		out[k] = v
	}
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Run dispatches ev to its handler.
func (d Dispatch) Run(ctx context.Context, st *State, ev Event) error {
	fn, ok := d[ev.Name]
	if !ok {
		metrics.IncPageEvent(st.Page, "unknown", "rejected")
		return errors.Wrapf(ErrUnknownEvent, "%s", ev.Name)
	}
	err := fn(ctx, st, ev)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		telemetry.Error("page.event.failed", map[string]any{
			"page":  st.Page,
			"event": ev.Name,
			"sid":   st.ID,
			"error": err,
		})
	}
	metrics.IncPageEvent(st.Page, ev.Name, outcome)
	return err
}
