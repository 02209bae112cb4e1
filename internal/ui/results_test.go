package ui

import (
	"strings"
	"testing"

	"jobmatch/internal/jobs"
)

func TestResultsMarkdown(t *testing.T) {
	res := sampleResult()
	res.CompaniesSearched = []string{"stripe", "figma", "scale-ai", "notion", "airbnb", "plaid", "ramp"}
	lo, hi := 120000, 150000
	res.Jobs[1].SalaryMin, res.Jobs[1].SalaryMax = &lo, &hi
	res.Jobs[1].MatchReasons = []string{"React", "Design systems"}
	res.Profile.SeniorityLevel = "senior"

	md := resultsMarkdown(res, 1)
	for _, want := range []string{
		"# 2 jobs found",
		"**Searched:** Stripe, Figma, Scale Ai, Notion, Airbnb (+2 more)",
		"- **Seniority:** senior",
		"### 1. Frontend Engineer at Stripe",
		"### ▸ 2. UI Engineer at Figma",
		"**91% match** · greenhouse · Remote",
		"**64% match** · lever · $120k–$150k",
		"> Strong React background",
		"- Design systems",
		"https://jobs.example/2",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Company tier") {
		t.Error("expected empty profile items to be omitted")
	}
}

func TestResultsMarkdownNoJobs(t *testing.T) {
	md := resultsMarkdown(jobs.MatchResult{}, 0)
	if !strings.Contains(md, "# 0 jobs found") || !strings.Contains(md, "No matching jobs") {
		t.Errorf("unexpected markdown:\n%s", md)
	}
	if strings.Contains(md, "Searched") {
		t.Error("expected no searched line without companies")
	}
}

func TestDisplayCompany(t *testing.T) {
	tests := map[string]string{
		"stripe":   "Stripe",
		"scale-ai": "Scale Ai",
		"":         "",
		"Figma":    "Figma",
	}
	for in, want := range tests {
		if got := displayCompany(in); got != want {
			t.Errorf("displayCompany(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSalaryRange(t *testing.T) {
	lo, hi := 90000, 110000
	tests := []struct {
		job  jobs.Job
		want string
	}{
		{jobs.Job{SalaryMin: &lo, SalaryMax: &hi}, "$90k–$110k"},
		{jobs.Job{SalaryMin: &lo}, "from $90k"},
		{jobs.Job{SalaryMax: &hi}, "up to $110k"},
		{jobs.Job{}, ""},
	}
	for _, tt := range tests {
		if got := salaryRange(tt.job); got != tt.want {
			t.Errorf("salaryRange = %q, want %q", got, tt.want)
		}
	}
}

func TestResultsViewMoveClamps(t *testing.T) {
	r := NewResultsView(sampleResult(), 80, 10, "plain")
	r.Move(-1)
	if job, _ := r.Selected(); job.ID != "1" {
		t.Errorf("expected first job, got %q", job.ID)
	}
	r.Move(5)
	if job, _ := r.Selected(); job.ID != "2" {
		t.Errorf("expected last job, got %q", job.ID)
	}
	if !strings.Contains(r.View(), selectedMarker) {
		t.Errorf("expected the selected heading to be visible:\n%s", r.View())
	}

	empty := NewResultsView(jobs.MatchResult{}, 80, 10, "plain")
	empty.Move(1)
	if _, ok := empty.Selected(); ok {
		t.Error("expected no selection without jobs")
	}
}
