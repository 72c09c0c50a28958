// Package modal manages the single dialog slot of a page.
package modal

import (
	"bytes"
	"html/template"
)

// CloseEvent is the page event posted by the close button, the backdrop and the Escape key.
const CloseEvent = "modal.close"

// Dialog is a built, not yet shown, dialog.
type Dialog struct {
	Title   string        `json:"title"`
	Body    template.HTML `json:"body"`
	Actions template.HTML `json:"actions,omitempty"`
}

// Build assembles a dialog from already-rendered markup.
func Build(title string, body, actions template.HTML) Dialog {
	return Dialog{Title: title, Body: body, Actions: actions}
}

// Manager owns the dialog slot. The zero value is closed.
type Manager struct {
	Open *Dialog `json:"open,omitempty"`
}

// Show mounts d, replacing any dialog already open.
func (m *Manager) Show(d Dialog) {
	m.Open = &d
}

// Close empties the slot. Closing a closed manager is a no-op.
func (m *Manager) Close() {
	m.Open = nil
}

// IsOpen reports whether a dialog is mounted.
func (m *Manager) IsOpen() bool {
	return m.Open != nil
}

// Current returns the mounted dialog.
func (m *Manager) Current() (Dialog, bool) {
	if m.Open == nil {
		return Dialog{}, false
	}
	return *m.Open, true
}

var containerTmpl = template.Must(template.New("modal").Parse(`<div id="modalContainer">
{{- with .}}
<div class="fixed inset-0 z-50 overflow-y-auto modal-backdrop" role="dialog" aria-modal="true">
  <form id="modal-close" method="post"><input type="hidden" name="event" value="` + CloseEvent + `"></form>
  <div class="flex items-center justify-center min-h-screen px-4 pt-4 pb-20 text-center sm:p-0">
    <button type="submit" form="modal-close" aria-label="Close" class="fixed inset-0 w-full h-full cursor-default transition-opacity bg-gray-500 dark:bg-gray-900 bg-opacity-75 dark:bg-opacity-75"></button>
    <div class="relative inline-block w-full max-w-2xl px-6 py-6 overflow-hidden text-left align-middle transition-all transform bg-white dark:bg-gray-800 shadow-xl rounded-2xl fade-in">
      <div class="flex items-center justify-between mb-4">
        <h3 class="text-xl font-semibold text-gray-900 dark:text-white">{{.Title}}</h3>
        <button type="submit" form="modal-close" class="text-gray-400 hover:text-gray-600 dark:hover:text-gray-200"><i class="fas fa-times text-xl"></i></button>
      </div>
      <div class="mt-4">{{.Body}}</div>
      {{- if .Actions}}
      <div class="mt-6 flex justify-end space-x-3">{{.Actions}}</div>
      {{- end}}
    </div>
  </div>
  <script>document.addEventListener("keydown",function(e){if(e.key==="Escape"){var f=document.getElementById("modal-close");if(f){f.submit();}}});</script>
</div>
{{- end}}
</div>`))

// Render returns the container markup: empty when closed, exactly one dialog when open.
func (m *Manager) Render() template.HTML {
	var buf bytes.Buffer
	if err := containerTmpl.Execute(&buf, m.Open); err != nil {
		return template.HTML(`<div id="modalContainer"></div>`)
	}
	return template.HTML(buf.String())
}
