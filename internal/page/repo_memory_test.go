package page

import (
	"context"
	"errors"
	"html/template"
	"testing"
	"time"

	"resume-web/internal/modal"
)

func TestMemoryRepoRoundTrip(t *testing.T) {
	repo := NewMemoryRepo(time.Hour)
	ctx := context.Background()
	st := NewState("dashboard")
	st.Section = "users"
	st.SetRegion("usersTable", template.HTML("<tr><td>Ada</td></tr>"))
	st.Doc.Modal.Show(modal.Build("Confirm Delete", "", ""))
	st.Redirect("/ignored")

	if err := repo.Save(ctx, st); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Get(ctx, st.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Section != "users" || got.Region("usersTable") != st.Region("usersTable") {
		t.Fatalf("state not restored: %+v", got)
	}
	if d, ok := got.Doc.Modal.Current(); !ok || d.Title != "Confirm Delete" {
		t.Fatalf("modal not restored")
	}
	if got.RedirectTo != "" {
		t.Fatalf("redirect is per request and must not persist")
	}

	got.Section = "jobs"
	again, _ := repo.Get(ctx, st.ID)
	if again.Section != "users" {
		t.Fatalf("stored state must not alias returned copies")
	}
}

func TestMemoryRepoExpiresAndSweeps(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo(time.Minute)
	repo.now = func() time.Time { return now }
	ctx := context.Background()
	st := NewState("home")
	if err := repo.Save(ctx, st); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := repo.Get(ctx, st.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
	if n := repo.Sweep(); n != 1 {
		t.Fatalf("expected one swept, got %d", n)
	}
}

func TestMemoryRepoDeleteAndContext(t *testing.T) {
	repo := NewMemoryRepo(0)
	st := NewState("home")
	if err := repo.Save(context.Background(), st); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(context.Background(), st.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Get(context.Background(), st.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after delete")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.Save(ctx, st); err == nil {
		t.Fatalf("expected context error")
	}
}
