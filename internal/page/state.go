// Package page holds the per-page session: the explicit page state, the
// rendered document it owns, the typed event dispatch table, and the gin
// glue that loads, dispatches, saves and renders it.
package page

import (
	"html/template"
	"time"

	"github.com/google/uuid"

	"resume-web/internal/apiclient"
	"resume-web/internal/modal"
)

// ToastKind selects the toast styling.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastInfo    ToastKind = "info"
)

// Toast is a transient message shown once on the next render.
type Toast struct {
	Kind  ToastKind `json:"kind"`
	Title string    `json:"title"`
	Text  string    `json:"text,omitempty"`
}

// Document is the server-side DOM of a page. Loaders replace regions, and a
// region is only rewritten from a successful fetch.
type Document struct {
	Regions map[string]template.HTML `json:"regions,omitempty"`
	Text    map[string]string        `json:"text,omitempty"`
	Visible map[string]bool          `json:"visible,omitempty"`
	Errors  map[string]string        `json:"errors,omitempty"`
	Values  map[string]string        `json:"values,omitempty"`
	Modal   modal.Manager            `json:"modal"`
	Toasts  []Toast                  `json:"toasts,omitempty"`
}

// State is the page-session context passed to Init and to every event handler.
type State struct {
	ID        string      `json:"id"`
	Page      string      `json:"page"`
	Tab       string      `json:"tab,omitempty"`
	Filter    string      `json:"filter,omitempty"`
	Section   string      `json:"section,omitempty"`
	Upload    UploadState `json:"upload,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`

	// Owner fingerprints the backend credentials the session was built with.
	Owner string   `json:"owner,omitempty"`
	Doc   Document `json:"doc"`

	// API is the credentialed client for the current request.
	API *apiclient.Session `json:"-"`
	// RedirectTo ends the page session and navigates the browser.
	RedirectTo string `json:"-"`
	// Attachment is sent to the browser instead of the page.
	Attachment *apiclient.Attachment `json:"-"`
}

// NewState starts a fresh page session.
func NewState(pageName string) *State {
	return &State{
		ID:        uuid.NewString(),
		Page:      pageName,
		Upload:    UploadIdle,
		CreatedAt: time.Now().UTC(),
	}
}

// Region returns a rendered region.
func (s *State) Region(name string) template.HTML {
	return s.Doc.Regions[name]
}

// SetRegion replaces a rendered region.
func (s *State) SetRegion(name string, html template.HTML) {
	if s.Doc.Regions == nil {
		s.Doc.Regions = make(map[string]template.HTML)
	}
	s.Doc.Regions[name] = html
}

// SetText replaces a text slot.
func (s *State) SetText(name, text string) {
	if s.Doc.Text == nil {
		s.Doc.Text = make(map[string]string)
	}
	s.Doc.Text[name] = text
}

// Text returns a text slot.
func (s *State) Text(name string) string {
	return s.Doc.Text[name]
}

// SetVisible toggles a section.
func (s *State) SetVisible(name string, visible bool) {
	if s.Doc.Visible == nil {
		s.Doc.Visible = make(map[string]bool)
	}
	s.Doc.Visible[name] = visible
}

// Visible reports whether a section is shown.
func (s *State) Visible(name string) bool {
	return s.Doc.Visible[name]
}

// SetError attaches an inline message to a field.
func (s *State) SetError(field, msg string) {
	if s.Doc.Errors == nil {
		s.Doc.Errors = make(map[string]string)
	}
	s.Doc.Errors[field] = msg
}

// ClearError removes an inline message.
func (s *State) ClearError(field string) {
	delete(s.Doc.Errors, field)
}

// SetValues remembers form input so a rejected form is shown as typed.
func (s *State) SetValues(values map[string]string) {
	if s.Doc.Values == nil {
		s.Doc.Values = make(map[string]string, len(values))
	}
	for k, v := range values {
		s.Doc.Values[k] = v
	}
}

// ClearValues forgets remembered input for the given keys.
func (s *State) ClearValues(keys ...string) {
	for _, k := range keys {
		delete(s.Doc.Values, k)
	}
}

// Toast queues a transient message.
func (s *State) Toast(kind ToastKind, title, text string) {
	s.Doc.Toasts = append(s.Doc.Toasts, Toast{Kind: kind, Title: title, Text: text})
}

// TakeToasts returns and clears queued toasts.
func (s *State) TakeToasts() []Toast {
	out := s.Doc.Toasts
	s.Doc.Toasts = nil
	return out
}

// Redirect ends the page session and sends the browser to url.
func (s *State) Redirect(url string) {
	s.RedirectTo = url
}
