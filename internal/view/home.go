package view

import (
	"html/template"
	"strconv"

	"github.com/ecodeclub/ekit/slice"

	"resume-web/internal/models"
)

const (
	badgeGreat      = "Great"
	badgeGood       = "Good"
	greatColor      = template.CSS("var(--accent)")
	goodColor       = template.CSS("#fbc02d")
	greatScoreLevel = 80
)

type historyCard struct {
	ID         string
	Score      string
	Badge      string
	BadgeColor template.CSS
	Preview    string
	Date       string
}

// HistoryList renders the analysis history sidebar cards.
func HistoryList(items []models.ResumeAnalysis) template.HTML {
	cards := slice.Map(items, func(_ int, src models.ResumeAnalysis) historyCard {
		c := historyCard{
			ID:         src.ID,
			Score:      FormatScore(src.AIScore),
			Badge:      badgeGood,
			BadgeColor: goodColor,
			Preview:    Preview(src.AIImprovedText),
			Date:       FormatDate(src.CreatedAt),
		}
		if src.AIScore >= greatScoreLevel {
			c.Badge, c.BadgeColor = badgeGreat, greatColor
		}
		return c
	})
	return execute("history-list", cards)
}

type jobCard struct {
	ID          string
	Company     string
	Position    string
	Description string
	Notes       string
	Link        string
	Status      string
	Style       StatusStyle
	Date        string
}

// JobCards renders the home job tracker list.
func JobCards(jobs []models.Job) template.HTML {
	cards := slice.Map(jobs, func(_ int, src models.Job) jobCard {
		return jobCard{
			ID:          src.ID,
			Company:     src.Company,
			Position:    src.Position,
			Description: src.Description,
			Notes:       src.Notes,
			Link:        src.Link,
			Status:      Capitalize(string(src.Status)),
			Style:       CardStyle(src.Status),
			Date:        FormatDate(src.AppliedDate),
		}
	})
	return execute("job-cards", cards)
}

// JobOptions renders the analyzer job picker, keeping selected chosen when
// it is still in the list.
func JobOptions(jobs []models.Job, selected string) template.HTML {
	opts := slice.Map(jobs, func(_ int, src models.Job) option {
		return option{
			Value:    src.ID,
			Label:    src.Position + " — " + src.Company,
			Selected: selected != "" && src.ID == selected,
		}
	})
	return execute("job-options", opts)
}

type statusCount struct {
	Status string
	Label  string
	Count  int
	Style  StatusStyle
}

type jobSummary struct {
	Total  int
	Counts []statusCount
}

// JobSummary renders the per-status counts of the tracked jobs.
func JobSummary(jobs []models.Job) template.HTML {
	counts := make(map[models.JobStatus]int, len(models.JobStatuses))
	for _, j := range jobs {
		counts[j.Status]++
	}
	sum := jobSummary{
		Total: len(jobs),
		Counts: slice.Map(models.JobStatuses, func(_ int, s models.JobStatus) statusCount {
			return statusCount{Status: string(s), Label: Capitalize(string(s)), Count: counts[s], Style: CardStyle(s)}
		}),
	}
	return execute("job-summary", sum)
}

type scoreRing struct {
	ID    string
	Title string
	Value string
	Dash  string
	Label string
	Icon  string
}

type analysisView struct {
	ID            string
	Date          string
	Rings         []scoreRing
	MissingSkills []string
	Suggestions   []string
	ImprovedText  string
}

func ring(id, title string, score float64, label, good string) scoreRing {
	icon := "fa-exclamation-circle"
	if label == good {
		icon = "fa-check-circle"
	}
	return scoreRing{
		ID:    id,
		Title: title,
		Value: FormatScore(score),
		Dash:  strconv.FormatFloat(CircleDash(score), 'f', 1, 64),
		Label: label,
		Icon:  icon,
	}
}

// AnalysisResult renders the score rings, the numbered lists and the
// improved summary of one analysis.
func AnalysisResult(r models.ResumeAnalysis) template.HTML {
	l := Labels(r)
	return execute("analysis-result", analysisView{
		ID:   r.ID,
		Date: FormatDate(r.CreatedAt),
		Rings: []scoreRing{
			ring("overallCircle", "Overall Score", r.AIScore, l.Overall, "Excellent"),
			ring("atsCircle", "ATS Score", r.ATSScore, l.ATS, "Optimized"),
			ring("jobMatchCircle", "Job Match", r.JobMatchPercentage, l.JobMatch, "Optimized"),
		},
		MissingSkills: r.MissingSkills,
		Suggestions:   r.Suggestions,
		ImprovedText:  r.AIImprovedText,
	})
}

type homeJobEdit struct {
	ID          string
	Company     string
	Position    string
	Description string
	Link        string
	Notes       string
	Statuses    []option
}

// HomeJobEditForm renders the tracker's edit job modal body.
func HomeJobEditForm(j models.Job) template.HTML {
	return execute("home-job-edit-form", homeJobEdit{
		ID:          j.ID,
		Company:     j.Company,
		Position:    j.Position,
		Description: j.Description,
		Link:        j.Link,
		Notes:       j.Notes,
		Statuses:    markSelected(statusChoices(), string(j.Status)),
	})
}
