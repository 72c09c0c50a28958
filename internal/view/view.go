// Package view renders the markup of every page region. Renderers are pure:
// they take backend records and return escaped HTML.
package view

import (
	"bytes"
	"embed"
	"html/template"

	"resume-web/internal/models"
	"resume-web/internal/shared/telemetry"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.New("view").Funcs(template.FuncMap{
	"inc":           func(i int) int { return i + 1 },
	"initials":      Initials,
	"field":         newDetailField,
	"list":          newDetailList,
	"input":         newTextInput,
	"withError":     withError,
	"statusSelect":  statusSelect,
	"filterSelect":  newFilterSelect,
	"scoreRanges":   func() []option { return scoreRanges },
	"dateRanges":    func() []option { return dateRanges },
	"statusChoices": statusChoices,
	"table":         newTable,
}).ParseFS(templateFS, "templates/*.html"))

// execute renders a named fragment. A failed render is logged and yields
// nothing so the previous region is never half written.
func execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		telemetry.Error("view.render.failed", map[string]any{"template": name, "error": err})
		return ""
	}
	return template.HTML(buf.String())
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

func markSelected(opts []option, selected string) []option {
	out := make([]option, len(opts))
	for i, o := range opts {
		o.Selected = o.Value == selected
		out[i] = o
	}
	return out
}

var scoreRanges = []option{
	{Value: "high", Label: "High (85+)"},
	{Value: "medium", Label: "Medium (70-84)"},
	{Value: "low", Label: "Low (<70)"},
}

var dateRanges = []option{
	{Value: "today", Label: "Today"},
	{Value: "week", Label: "This week"},
	{Value: "month", Label: "This month"},
}

func statusChoices() []option {
	out := make([]option, 0, len(models.JobStatuses))
	for _, s := range models.JobStatuses {
		out = append(out, option{Value: string(s), Label: Capitalize(string(s))})
	}
	return out
}

type detailField struct {
	Label string
	Value string
}

func newDetailField(label, value string) detailField {
	return detailField{Label: label, Value: value}
}

type detailList struct {
	Label string
	Items []string
}

func newDetailList(label string, items []string) detailList {
	return detailList{Label: label, Items: items}
}

type textInput struct {
	ID       string
	Name     string
	Label    string
	Type     string
	Value    string
	Required bool
	Error    string
}

func newTextInput(id, name, label, typ, value string, required bool) textInput {
	return textInput{ID: id, Name: name, Label: label, Type: typ, Value: value, Required: required}
}

func withError(in textInput, msg string) textInput {
	in.Error = msg
	return in
}

type selectInput struct {
	ID      string
	Name    string
	Label   string
	Options []option
	Error   string
}

func statusSelect(id, selected string) selectInput {
	if selected == "" {
		selected = string(models.JobApplied)
	}
	return selectInput{ID: id, Name: "status", Label: "Status", Options: markSelected(statusChoices(), selected)}
}

type filterSelect struct {
	ID          string
	Name        string
	Placeholder string
	Options     []option
}

func newFilterSelect(id, name, placeholder, selected string, opts []option) filterSelect {
	return filterSelect{ID: id, Name: name, Placeholder: placeholder, Options: markSelected(opts, selected)}
}

type table struct {
	ID      string
	Body    template.HTML
	Headers []string
}

func newTable(id string, body template.HTML, headers ...string) table {
	return table{ID: id, Body: body, Headers: headers}
}
