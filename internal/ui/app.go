package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"jobmatch/internal/catalog"
	"jobmatch/internal/debug"
	apperrors "jobmatch/internal/errors"
	"jobmatch/internal/jobs"
	"jobmatch/internal/ui/theme"
)

const (
	defaultRequestTimeout = 30 * time.Second
	maxBodyWidth          = 100
	// headerHeight is the header line plus the blank line below it.
	headerHeight = 2
	bannerWidth  = 48
)

type viewMode int

const (
	viewForm viewMode = iota
	viewLoading
	viewResults
)

// Config configures the UI application.
type Config struct {
	Client         jobs.Client
	WordLists      catalog.WordLists
	BlurGrace      time.Duration
	MaxSkills      int
	RequestTimeout time.Duration
	// MarkdownStyle is a glamour standard style, or "plain".
	MarkdownStyle string
	Version       string
}

// App implements the Bubble Tea model for jobmatch.
type App struct {
	client  jobs.Client
	keys    KeyMap
	form    ProfileForm
	// formViewport clips the form to the terminal below the header.
	formViewport viewport.Model
	spinner      spinner.Model
	results ResultsView
	view    viewMode

	banner     string
	bannerRect Rect
	toast      string

	width         int
	height        int
	timeout       time.Duration
	markdownStyle string
	version       string
}

// NewApp creates the application model.
func NewApp(cfg Config) (*App, error) {
	if cfg.Client == nil {
		return nil, apperrors.New(apperrors.CodeConfigurationError, "no job service client configured", nil)
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Current().Primary)

	form := NewProfileForm(FormOptions{
		Skills:    cfg.WordLists.Skills,
		Locations: cfg.WordLists.Locations,
		Companies: cfg.WordLists.Companies,
		MaxSkills: cfg.MaxSkills,
		BlurGrace: cfg.BlurGrace,
	})

	return &App{
		client:        cfg.Client,
		keys:          DefaultKeyMap(),
		form:          form,
		formViewport:  viewport.New(0, 0),
		spinner:       sp,
		view:          viewForm,
		timeout:       cfg.RequestTimeout,
		markdownStyle: cfg.MarkdownStyle,
		version:       cfg.Version,
	}, nil
}

func (m *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetchCatalogs())
}

func (m *App) fetchCatalogs() tea.Cmd {
	client, timeout := m.client, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		cats, err := client.FetchCatalogs(ctx)
		return catalogsLoadedMsg{catalogs: cats, err: err}
	}
}

func (m *App) analyze(profile jobs.Profile) tea.Cmd {
	client, timeout := m.client, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := client.SubmitProfile(ctx, profile)
		return analysisDoneMsg{result: res, err: err}
	}
}

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.form.SetWidth(m.bodyWidth())
		if m.view == viewResults {
			m.results.SetSize(m.bodyWidth(), m.resultsHeight())
		}
		return m, nil

	case catalogsLoadedMsg:
		if msg.err != nil {
			debug.Warn("catalog fetch failed", msg.err, "code", apperrors.CodeOf(msg.err))
			return m, nil
		}
		targets := catalog.Union(msg.catalogs.Greenhouse, msg.catalogs.Lever)
		debug.Log("catalogs loaded", "greenhouse", len(msg.catalogs.Greenhouse),
			"lever", len(msg.catalogs.Lever), "targets", len(targets))
		m.form.SetTargets(targets)
		return m, nil

	case SubmitRequestedMsg:
		debug.Log("submitting profile", "role", msg.Profile.Role, "company", msg.Profile.Company)
		m.form.Teardown()
		m.banner = ""
		m.view = viewLoading
		return m, tea.Batch(m.spinner.Tick, m.analyze(msg.Profile))

	case analysisDoneMsg:
		if msg.err != nil {
			debug.Warn("analysis failed", msg.err, "code", apperrors.CodeOf(msg.err))
			m.banner = apperrors.MessageOf(msg.err)
			if m.banner == "" {
				m.banner = jobs.MsgAnalyzeFailed
			}
			m.view = viewForm
			return m, m.form.Focus()
		}
		debug.Log("analysis done", "jobs", len(msg.result.Jobs), "total", msg.result.TotalJobs)
		m.results = NewResultsView(msg.result, m.bodyWidth(), m.resultsHeight(), m.markdownStyle)
		m.view = viewResults
		return m, nil

	case spinner.TickMsg:
		if m.view != viewLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case copyResultMsg:
		if msg.err != nil {
			debug.Warn("copy failed", msg.err)
			m.toast = "Copy failed"
		} else {
			m.toast = "Copied " + msg.url
		}
		return m, scheduleCopyToastTick()

	case copyToastTickMsg:
		m.toast = ""
		return m, nil

	case blurCommitMsg, FieldCommittedMsg, ChipsChangedMsg, chipFlashClearMsg:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.view == viewForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewForm:
		if m.banner != "" && key.Matches(msg, m.keys.Dismiss) && !m.form.PanelOpen() {
			m.banner = ""
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case viewResults:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.view = viewForm
			return m, m.form.Focus()
		case key.Matches(msg, m.keys.Up):
			m.results.Move(-1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.results.Move(1)
			return m, nil
		case key.Matches(msg, m.keys.Copy):
			if job, ok := m.results.Selected(); ok && job.URL != "" {
				return m, copyURLCmd(job.URL)
			}
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			name := theme.CycleTheme()
			debug.Log("theme changed", "theme", name)
			return m, nil
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewForm:
		if m.banner != "" && msg.Action == tea.MouseActionPress && m.bannerRect.Contains(msg.X, msg.Y) {
			m.banner = ""
			return m, nil
		}
		m.syncFormViewport()
		local := msg
		local.X -= m.bodyLeft()
		local.Y -= headerHeight
		if h := m.formHeight(); h > 0 && local.Y >= h {
			// Below the visible form; treat it as a press on nothing.
			local.Y = -1
		} else if local.Y >= 0 {
			local.Y += m.formViewport.YOffset
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(local)
		return m, cmd
	case viewResults:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *App) bodyWidth() int {
	w := m.width - 2
	if w > maxBodyWidth {
		w = maxBodyWidth
	}
	return w
}

func (m *App) bodyLeft() int {
	return 1
}

func (m *App) resultsHeight() int {
	// header, blank line, summary line, blank line, help line
	h := m.height - headerHeight - 3
	if h < 5 {
		h = 5
	}
	return h
}

// formHeight is the number of rows the form may use, or 0 before the first
// WindowSizeMsg.
func (m *App) formHeight() int {
	if m.height <= 0 {
		return 0
	}
	return max(m.height-headerHeight, 1)
}

// syncFormViewport loads the current form into the viewport and scrolls so
// the focused field, open panel included, is visible. Fields taller than the
// viewport are pinned by their top row.
func (m *App) syncFormViewport() {
	h := m.formHeight()
	if h == 0 {
		return
	}
	lay := m.form.layout()
	m.formViewport.Width = max(m.form.width, lipgloss.Width(lay.view))
	m.formViewport.Height = h
	m.formViewport.SetContent(lay.view)

	off := m.formViewport.YOffset
	if r, ok := NewDismissal(lay.regions).Region(m.form.FocusedField()); ok {
		top, bottom := r.Bounds.Y, r.Bounds.Y+r.Bounds.H
		switch {
		case top < off || bottom-top > h:
			off = top
		case bottom > off+h:
			off = bottom - h
		}
	}
	m.formViewport.SetYOffset(off)
}

func (m *App) View() string {
	header := styleAppHeader().Render(m.title()) + " " +
		styleHelp().Render("Find jobs that match your profile")

	var body string
	switch m.view {
	case viewForm:
		if m.formHeight() > 0 {
			m.syncFormViewport()
			body = m.formViewport.View()
		} else {
			body = m.form.View()
		}
	case viewLoading:
		body = m.spinner.View() + " Analyzing your profile and ranking jobs..."
	case viewResults:
		body = m.resultsBody()
	}
	body = lipgloss.NewStyle().PaddingLeft(m.bodyLeft()).Render(body)
	frame := header + "\n\n" + body

	if m.banner == "" && m.toast == "" {
		m.bannerRect = Rect{}
		return frame
	}
	return m.overlay(frame)
}

// overlay draws the banner and toast over frame.
func (m *App) overlay(frame string) string {
	width, height := m.width, m.height
	if width <= 0 {
		width = lipgloss.Width(frame)
	}
	if height <= 0 {
		height = lipgloss.Height(frame)
	}

	canvas := NewCanvas(width, height)
	canvas.DrawStringAt(0, 0, frame)
	m.bannerRect = Rect{}
	if m.banner != "" && m.view == viewForm {
		m.bannerRect = canvas.topRightOverlay(renderBanner(m.banner), headerHeight, 1)
	}
	if m.toast != "" {
		canvas.bottomRightOverlay(styleToast().Render(m.toast), 1)
	}
	return canvas.Render()
}

func renderBanner(msg string) string {
	text := wordwrap.String(msg, bannerWidth-4)
	return styleBanner().Width(bannerWidth).Render(glyphClose + " " + text)
}

func (m *App) title() string {
	if m.version == "" {
		return "JOBMATCH"
	}
	return fmt.Sprintf("JOBMATCH %s", m.version)
}

func (m *App) resultsBody() string {
	summary := ""
	if job, ok := m.results.Selected(); ok {
		summary = styleScore(job.MatchScore).Render(fmt.Sprintf("%d%%", job.MatchScore)) + " " +
			styleLabel().Render(job.Title)
	}
	help := helpLine(m.keys.Down, m.keys.Copy, m.keys.Back, m.keys.Theme, m.keys.Quit)
	return strings.Join([]string{summary, "", m.results.View(), help}, "\n")
}
