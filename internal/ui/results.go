package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"jobmatch/internal/jobs"
)

// maxSearchedShown is how many searched companies the summary names before
// collapsing the rest into a count.
const maxSearchedShown = 5

const selectedMarker = "▸"

// copyResultMsg reports the outcome of copying a job URL.
type copyResultMsg struct {
	url string
	err error
}

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

func copyURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{url: url, err: clipboardWrite(url)}
	}
}

// ResultsView shows a match result as rendered markdown in a scrollable
// viewport. One job is selected at a time.
type ResultsView struct {
	result   jobs.MatchResult
	selected int
	viewport viewport.Model
	style    string
	render   func(string) string
	width    int
}

// NewResultsView creates a view of result sized width x height.
func NewResultsView(result jobs.MatchResult, width, height int, style string) ResultsView {
	r := ResultsView{
		result:   result,
		viewport: viewport.New(width, height),
		style:    style,
	}
	r.SetSize(width, height)
	return r
}

// SetSize resizes the view and re-renders its content.
func (r *ResultsView) SetSize(width, height int) {
	if width <= 0 {
		width = defaultFormWidth
	}
	if height <= 0 {
		height = 20
	}
	if width != r.width || r.render == nil {
		r.render = buildMarkdownRenderer(r.style, width)
		r.width = width
	}
	r.viewport.Width = width
	r.viewport.Height = height
	r.refresh()
}

// Selected returns the selected job, if any.
func (r ResultsView) Selected() (jobs.RankedJob, bool) {
	if r.selected < 0 || r.selected >= len(r.result.Jobs) {
		return jobs.RankedJob{}, false
	}
	return r.result.Jobs[r.selected], true
}

// Move changes the selection by delta, clamped to the job list.
func (r *ResultsView) Move(delta int) {
	if len(r.result.Jobs) == 0 {
		return
	}
	next := r.selected + delta
	if next < 0 {
		next = 0
	}
	if next > len(r.result.Jobs)-1 {
		next = len(r.result.Jobs) - 1
	}
	if next == r.selected {
		return
	}
	r.selected = next
	r.refresh()
}

func (r *ResultsView) refresh() {
	content := r.render(resultsMarkdown(r.result, r.selected))
	r.viewport.SetContent(content)
	r.scrollToSelected(content)
}

// scrollToSelected keeps the selected job's heading inside the viewport.
func (r *ResultsView) scrollToSelected(content string) {
	for i, line := range strings.Split(content, "\n") {
		if !strings.Contains(line, selectedMarker) {
			continue
		}
		top := r.viewport.YOffset
		if i < top || i >= top+r.viewport.Height {
			r.viewport.SetYOffset(i)
		}
		return
	}
}

// Update passes scrolling input to the viewport.
func (r ResultsView) Update(msg tea.Msg) (ResultsView, tea.Cmd) {
	var cmd tea.Cmd
	r.viewport, cmd = r.viewport.Update(msg)
	return r, cmd
}

// View renders the viewport.
func (r ResultsView) View() string {
	return r.viewport.View()
}

// resultsMarkdown formats a match result for glamour.
func resultsMarkdown(res jobs.MatchResult, selected int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %d jobs found\n\n", res.TotalJobs)

	if n := len(res.CompaniesSearched); n > 0 {
		shown := res.CompaniesSearched
		if n > maxSearchedShown {
			shown = shown[:maxSearchedShown]
		}
		names := make([]string, len(shown))
		for i, c := range shown {
			names[i] = displayCompany(c)
		}
		fmt.Fprintf(&b, "**Searched:** %s", strings.Join(names, ", "))
		if n > maxSearchedShown {
			fmt.Fprintf(&b, " (+%d more)", n-maxSearchedShown)
		}
		b.WriteString("\n\n")
	}

	p := res.Profile
	b.WriteString("## Your profile\n\n")
	writeItem(&b, "Seniority", p.SeniorityLevel)
	writeItem(&b, "Company tier", p.CompanyTier)
	writeItem(&b, "Expected salary", p.ExpectedSalaryRange)
	writeItem(&b, "Target titles", strings.Join(p.TargetTitles, ", "))
	writeItem(&b, "Inferred skills", strings.Join(p.InferredSkills, ", "))
	b.WriteString("\n")

	if len(res.Jobs) == 0 {
		b.WriteString("No matching jobs. Try widening your target companies.\n")
		return b.String()
	}

	b.WriteString("## Matches\n\n")
	for i, job := range res.Jobs {
		marker := ""
		if i == selected {
			marker = selectedMarker + " "
		}
		fmt.Fprintf(&b, "### %s%d. %s at %s\n\n", marker, i+1, job.Title, displayCompany(job.Company))

		meta := []string{fmt.Sprintf("**%d%% match**", job.MatchScore), job.Source}
		if job.Location != nil && *job.Location != "" {
			meta = append(meta, *job.Location)
		}
		if s := salaryRange(job.Job); s != "" {
			meta = append(meta, s)
		}
		b.WriteString(strings.Join(meta, " · "))
		b.WriteString("\n\n")

		if job.Insight != "" {
			fmt.Fprintf(&b, "> %s\n\n", job.Insight)
		}
		for _, reason := range job.MatchReasons {
			fmt.Fprintf(&b, "- %s\n", reason)
		}
		if len(job.MatchReasons) > 0 {
			b.WriteString("\n")
		}
		if job.URL != "" {
			fmt.Fprintf(&b, "%s\n\n", job.URL)
		}
	}
	return b.String()
}

func writeItem(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "- **%s:** %s\n", label, value)
}

func salaryRange(job jobs.Job) string {
	switch {
	case job.SalaryMin != nil && job.SalaryMax != nil:
		return fmt.Sprintf("$%dk–$%dk", *job.SalaryMin/1000, *job.SalaryMax/1000)
	case job.SalaryMin != nil:
		return fmt.Sprintf("from $%dk", *job.SalaryMin/1000)
	case job.SalaryMax != nil:
		return fmt.Sprintf("up to $%dk", *job.SalaryMax/1000)
	}
	return ""
}

// displayCompany turns a board slug such as "scale-ai" into "Scale Ai".
func displayCompany(slug string) string {
	words := strings.Fields(strings.ReplaceAll(slug, "-", " "))
	for i, w := range words {
		words[i] = titleCase(w)
	}
	return strings.Join(words, " ")
}

func titleCase(value string) string {
	if value == "" {
		return value
	}
	runes := []rune(value)
	first := strings.ToUpper(string(runes[0]))
	return first + string(runes[1:])
}
