package view

import (
	"testing"
	"time"

	"resume-web/internal/models"
)

func TestScoreClassThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, scoreGreen},
		{85, scoreGreen},
		{84.9, scoreYellow},
		{70, scoreYellow},
		{69, scoreRed},
		{0, scoreRed},
	}
	for _, tc := range cases {
		if got := ScoreClass(tc.score); got != tc.want {
			t.Fatalf("ScoreClass(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestInitials(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Jane Doe", "JD"},
		{"john.smith", "JS"},
		{"  ada  lovelace", "AL"},
		{"émile zola", "ÉZ"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Initials(tc.in); got != tc.want {
			t.Fatalf("Initials(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{2 * time.Hour, "2 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{8 * 24 * time.Hour, "1 week ago"},
		{40 * 24 * time.Hour, "1 month ago"},
		{800 * 24 * time.Hour, "2 years ago"},
	}
	for _, tc := range cases {
		if got := TimeAgo(now.Add(-tc.ago), now); got != tc.want {
			t.Fatalf("TimeAgo(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	ts := models.Timestamp{Time: time.Date(2025, 3, 4, 22, 0, 0, 0, time.UTC)}
	if got := FormatDate(ts); got != "3/4/2025" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := InputDate(ts); got != "2025-03-04" {
		t.Fatalf("InputDate = %q", got)
	}
	if got := FormatDate(models.Timestamp{}); got != "" {
		t.Fatalf("zero date should be empty, got %q", got)
	}
}

func TestFormatDateUsesDisplayZone(t *testing.T) {
	SetDisplayZone(time.FixedZone("UTC+5", 5*60*60))
	t.Cleanup(func() { SetDisplayZone(nil) })

	ts := models.Timestamp{Time: time.Date(2025, 3, 4, 22, 0, 0, 0, time.UTC)}
	if got := FormatDate(ts); got != "3/5/2025" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := InputDate(ts); got != "2025-03-05" {
		t.Fatalf("InputDate = %q", got)
	}
}

func TestPreviewTruncatesRunes(t *testing.T) {
	long := ""
	for i := 0; i < 200; i++ {
		long += "é"
	}
	got := Preview(long)
	if want := 150 + 3; len([]rune(got)) != want {
		t.Fatalf("preview length = %d, want %d", len([]rune(got)), want)
	}
	if got := Preview("short"); got != "short..." {
		t.Fatalf("short preview = %q", got)
	}
}

func TestLabels(t *testing.T) {
	l := Labels(models.ResumeAnalysis{AIScore: 80, ATSScore: 74, JobMatchPercentage: 75})
	if l.Overall != "Excellent" || l.ATS != "Needs Work" || l.JobMatch != "Optimized" {
		t.Fatalf("unexpected labels %+v", l)
	}
	l = Labels(models.ResumeAnalysis{AIScore: 79.5})
	if l.Overall != "Good" {
		t.Fatalf("overall below 80 should be Good, got %q", l.Overall)
	}
}

func TestCircleDashAndCapitalize(t *testing.T) {
	if got := CircleDash(50); got != 141.5 {
		t.Fatalf("CircleDash(50) = %v", got)
	}
	if got := Capitalize("interviewing"); got != "Interviewing" {
		t.Fatalf("Capitalize = %q", got)
	}
	if CardStyle("ghosted").Icon != "fa-circle" {
		t.Fatalf("unknown status should fall back to neutral style")
	}
}
