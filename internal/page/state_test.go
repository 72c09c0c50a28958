package page

import (
	"context"
	"errors"
	"html/template"
	"net/url"
	"testing"

	"resume-web/internal/modal"
)

func TestNewStateStartsIdle(t *testing.T) {
	st := NewState("home")
	if st.ID == "" || st.Page != "home" {
		t.Fatalf("unexpected state %+v", st)
	}
	if st.Upload != UploadIdle {
		t.Fatalf("expected idle upload, got %q", st.Upload)
	}
	if st.Doc.Modal.IsOpen() {
		t.Fatalf("modal should start closed")
	}
}

func TestTakeToastsClears(t *testing.T) {
	st := NewState("home")
	st.Toast(ToastSuccess, "Saved", "")
	st.Toast(ToastError, "Oops!", "nope")
	got := st.TakeToasts()
	if len(got) != 2 || got[1].Title != "Oops!" {
		t.Fatalf("unexpected toasts %+v", got)
	}
	if len(st.TakeToasts()) != 0 {
		t.Fatalf("toasts should be consumed")
	}
}

func TestUploadTransitions(t *testing.T) {
	st := NewState("home")
	if err := st.MoveUpload(UploadSubmitting); err == nil {
		t.Fatalf("idle cannot jump to submitting")
	}
	steps := []UploadState{UploadValidating, UploadSubmitting, UploadDisplaying, UploadValidating, UploadFailed, UploadValidating}
	for _, next := range steps {
		if err := st.MoveUpload(next); err != nil {
			t.Fatalf("move to %s: %v", next, err)
		}
	}
	if !UploadSubmitting.Busy() || UploadValidating.Busy() {
		t.Fatalf("only submitting is busy")
	}
}

func TestDispatchRoutesAndRejectsUnknown(t *testing.T) {
	var got string
	d := Dispatch{
		"tab.tracker": func(_ context.Context, st *State, ev Event) error {
			got = ev.Value("x")
			st.Tab = "tracker"
			return nil
		},
	}.With(Common())

	st := NewState("home")
	if err := d.Run(context.Background(), st, Event{Name: "tab.tracker", Form: url.Values{"x": {"1"}}}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != "1" || st.Tab != "tracker" {
		t.Fatalf("handler not applied")
	}
	err := d.Run(context.Background(), st, Event{Name: "nope"})
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected unknown event, got %v", err)
	}
}

func TestCommonClosesModal(t *testing.T) {
	st := NewState("home")
	st.Doc.Modal.Show(modal.Build("Job Details", template.HTML("<p>x</p>"), ""))
	if err := Common().Run(context.Background(), st, Event{Name: modal.CloseEvent}); err != nil {
		t.Fatalf("close: %v", err)
	}
	if st.Doc.Modal.IsOpen() {
		t.Fatalf("modal should be closed")
	}
}

func TestWithPrefersReceiver(t *testing.T) {
	calls := ""
	a := Dispatch{"e": func(context.Context, *State, Event) error { calls += "a"; return nil }}
	b := Dispatch{"e": func(context.Context, *State, Event) error { calls += "b"; return nil }}
	if err := a.With(b).Run(context.Background(), NewState("p"), Event{Name: "e"}); err != nil {
		t.Fatal(err)
	}
	if calls != "a" {
		t.Fatalf("receiver entry should win, got %q", calls)
	}
}
