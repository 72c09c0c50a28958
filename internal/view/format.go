package view

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"resume-web/internal/models"
)

// DateLayout is the en-US short date.
const DateLayout = "1/2/2006"

const (
	scoreGreen  = "text-green-600 dark:text-green-400"
	scoreYellow = "text-yellow-600 dark:text-yellow-400"
	scoreRed    = "text-red-600 dark:text-red-400"

	// CircleLength is the circumference of the result score rings.
	CircleLength = 283.0

	historyPreviewLen = 150
)

var titleCaser = cases.Title(language.English)

var displayZone atomic.Pointer[time.Location]

// SetDisplayZone sets the zone calendar dates are shown in. nil means UTC.
func SetDisplayZone(loc *time.Location) {
	displayZone.Store(loc)
}

func zone() *time.Location {
	if loc := displayZone.Load(); loc != nil {
		return loc
	}
	return time.UTC
}

// ScoreClass colours a table score: 85 and above green, 70 and above yellow.
func ScoreClass(score float64) string {
	switch {
	case score >= 85:
		return scoreGreen
	case score >= 70:
		return scoreYellow
	default:
		return scoreRed
	}
}

// FormatScore drops a trailing ".0".
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

// CircleDash returns the stroke length of a 0-100 score on a result ring.
func CircleDash(score float64) float64 {
	return score / 100 * CircleLength
}

// Capitalize upper-cases the first letter of a status or role word.
func Capitalize(s string) string {
	return titleCaser.String(s)
}

// Initials returns the first letter of each name part.
func Initials(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '.'
	})
	var b strings.Builder
	for _, p := range parts {
		r, _ := utf8.DecodeRuneInString(p)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// FormatDate renders a backend timestamp as a short date. Missing dates are empty.
func FormatDate(ts models.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(zone()).Format(DateLayout)
}

// InputDate renders a timestamp for an <input type="date">.
func InputDate(ts models.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(zone()).Format("2006-01-02")
}

// Preview truncates long text to the history card length and appends "...".
func Preview(s string) string {
	if utf8.RuneCountInString(s) > historyPreviewLen {
		s = string([]rune(s)[:historyPreviewLen])
	}
	return s + "..."
}

var agoUnits = []struct {
	label   string
	seconds int64
}{
	{"year", 31536000},
	{"month", 2592000},
	{"week", 604800},
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
}

// TimeAgo describes how long before now t happened.
func TimeAgo(t, now time.Time) string {
	secs := int64(now.Sub(t) / time.Second)
	if secs < 60 {
		return "just now"
	}
	for _, u := range agoUnits {
		if n := secs / u.seconds; n >= 1 {
			if n > 1 {
				return fmt.Sprintf("%d %ss ago", n, u.label)
			}
			return fmt.Sprintf("%d %s ago", n, u.label)
		}
	}
	return "just now"
}

// StatusStyle is the look of a job status on a home job card.
type StatusStyle struct {
	Background template.CSS
	Text       template.CSS
	Icon       string
}

var cardStyles = map[models.JobStatus]StatusStyle{
	models.JobApplied:      {Background: "#e3f2fd", Text: "#1976d2", Icon: "fa-paper-plane"},
	models.JobInterviewing: {Background: "#f3e5f5", Text: "#000000ff", Icon: "fa-phone"},
	models.JobOffered:      {Background: "var(--accent)", Text: "white", Icon: "fa-check-circle"},
	models.JobRejected:     {Background: "#ffebee", Text: "#c62828", Icon: "fa-times-circle"},
}

// CardStyle returns the job card colours. Unknown statuses render neutral.
func CardStyle(s models.JobStatus) StatusStyle {
	if st, ok := cardStyles[s]; ok {
		return st
	}
	return StatusStyle{Background: "var(--light-bg)", Text: "var(--secondary)", Icon: "fa-circle"}
}

var badgeClasses = map[models.JobStatus]string{
	models.JobApplied:      "bg-blue-100 text-blue-800 dark:bg-blue-900 dark:text-blue-300",
	models.JobInterviewing: "bg-yellow-100 text-yellow-800 dark:bg-yellow-900 dark:text-yellow-300",
	models.JobOffered:      "bg-green-100 text-green-800 dark:bg-green-900 dark:text-green-300",
	models.JobRejected:     "bg-red-100 text-red-800 dark:bg-red-900 dark:text-red-300",
}

// BadgeClass returns the admin table badge classes for a job status.
func BadgeClass(s models.JobStatus) string {
	return badgeClasses[s]
}

// RoleClass returns the role badge classes.
func RoleClass(r models.Role) string {
	if r == models.RoleAdmin {
		return "bg-purple-100 text-purple-800 dark:bg-purple-900 dark:text-purple-300"
	}
	return "bg-gray-100 text-gray-800 dark:bg-gray-700 dark:text-gray-300"
}

// ActivityStyle is the icon bubble of a feed entry.
type ActivityStyle struct {
	Background string
	Icon       string
}

var activityStyles = map[models.ActivityType]ActivityStyle{
	models.ActivityResume: {Background: "bg-primary-100 dark:bg-primary-900", Icon: "fas fa-file-upload text-primary-600 dark:text-primary-400"},
	models.ActivityJob:    {Background: "bg-green-100 dark:bg-green-900", Icon: "fas fa-briefcase text-green-600 dark:text-green-400"},
	models.ActivityUser:   {Background: "bg-purple-100 dark:bg-purple-900", Icon: "fas fa-user-plus text-purple-600 dark:text-purple-400"},
}

func activityStyle(t models.ActivityType) ActivityStyle {
	if st, ok := activityStyles[t]; ok {
		return st
	}
	return ActivityStyle{Background: "bg-gray-100 dark:bg-gray-700", Icon: "fas fa-circle text-gray-500"}
}

// ResultLabels are the status captions under the result rings.
type ResultLabels struct {
	Overall  string
	ATS      string
	JobMatch string
}

// Labels derives the result captions from the scores.
func Labels(r models.ResumeAnalysis) ResultLabels {
	l := ResultLabels{Overall: "Good", ATS: "Needs Work", JobMatch: "Needs Work"}
	if r.AIScore >= 80 {
		l.Overall = "Excellent"
	}
	if r.ATSScore >= 75 {
		l.ATS = "Optimized"
	}
	if r.JobMatchPercentage >= 75 {
		l.JobMatch = "Optimized"
	}
	return l
}
