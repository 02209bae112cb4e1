package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"jobmatch/internal/catalog"
	"jobmatch/internal/config"
	"jobmatch/internal/debug"
	"jobmatch/internal/jobs"
	"jobmatch/internal/ui"
	"jobmatch/internal/ui/theme"
)

const healthCheckTimeout = 5 * time.Second

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootFlags struct {
	apiURL    string
	blurGrace time.Duration
	theme     string
	debug     bool
	version   bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:           "jobmatch",
		Short:         "Find job listings that match your profile",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.version {
				printVersion(stdout)
				return nil
			}
			if err := config.Initialize(); err != nil {
				return fmt.Errorf("initialize config: %w", err)
			}
			if err := config.ApplyOverrides(collectOverrides(cmd)); err != nil {
				return fmt.Errorf("apply flags: %w", err)
			}
			return run(stderr, loadRuntimeOptions(), defaultDeps())
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&flags.apiURL, "api-url", config.DefaultAPIBaseURL, "Base URL of the job-matching service")
	fs.DurationVar(&flags.blurGrace, "blur-grace", config.DefaultBlurGrace, "Delay before a blurred field commits its text")
	fs.StringVar(&flags.theme, "theme", config.DefaultTheme, "Color theme ("+strings.Join(theme.Available(), ", ")+")")
	fs.BoolVar(&flags.debug, "debug", false, "Write a debug log to ~/.jobmatch/debug.log")
	fs.BoolVar(&flags.version, "version", false, "Print version information and exit")
	return cmd
}

// collectOverrides returns config overrides for the flags set on the command
// line. Unset flags leave file and environment values alone.
func collectOverrides(cmd *cobra.Command) map[string]any {
	overrides := map[string]any{}
	fs := cmd.Flags()
	if fs.Changed("api-url") {
		v, _ := fs.GetString("api-url")
		overrides[config.KeyAPIBaseURL] = strings.TrimSpace(v)
	}
	if fs.Changed("blur-grace") {
		v, _ := fs.GetDuration("blur-grace")
		overrides[config.KeyBlurGrace] = v
	}
	if fs.Changed("theme") {
		v, _ := fs.GetString("theme")
		overrides[config.KeyTheme] = strings.TrimSpace(v)
	}
	if fs.Changed("debug") {
		v, _ := fs.GetBool("debug")
		overrides[config.KeyDebug] = v
	}
	return overrides
}

type runtimeOptions struct {
	apiURL    string
	timeout   time.Duration
	blurGrace time.Duration
	maxSkills int
	theme     string
	debug     bool
}

func loadRuntimeOptions() runtimeOptions {
	return runtimeOptions{
		apiURL:    strings.TrimSpace(config.GetString(config.KeyAPIBaseURL)),
		timeout:   config.APITimeout(),
		blurGrace: config.BlurGrace(),
		maxSkills: config.SkillsMaxItems(),
		theme:     strings.TrimSpace(config.GetString(config.KeyTheme)),
		debug:     config.GetBool(config.KeyDebug),
	}
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.App) programRunner

type runDeps struct {
	newClient func(runtimeOptions) jobs.Client
	builder   func(ui.Config) (*ui.App, error)
	factory   programFactory
}

func defaultDeps() runDeps {
	return runDeps{
		newClient: func(opts runtimeOptions) jobs.Client {
			return jobs.NewHTTPClient(opts.apiURL, jobs.WithTimeout(opts.timeout))
		},
		builder: ui.NewApp,
		factory: func(app *ui.App) programRunner {
			return tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
		},
	}
}

func run(stderr io.Writer, opts runtimeOptions, deps runDeps) error {
	if err := debug.Init(opts.debug); err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: debug log disabled: %v\n", err)
	}
	defer debug.Close()
	debug.Log("starting", "version", Version, "api", opts.apiURL, "blur_grace", opts.blurGrace)

	if opts.theme != "" && !theme.SetTheme(opts.theme) {
		_, _ = fmt.Fprintf(stderr, "Warning: unknown theme %q, using %s\n", opts.theme, theme.CurrentName())
	}

	lists, err := catalog.Defaults()
	if err != nil {
		return fmt.Errorf("load word lists: %w", err)
	}

	if deps.newClient == nil || deps.builder == nil || deps.factory == nil {
		return fmt.Errorf("incomplete program dependencies")
	}
	client := deps.newClient(opts)
	checkHealth(stderr, client, opts.apiURL, healthCheckTimeout)

	app, err := deps.builder(ui.Config{
		Client:         client,
		WordLists:      lists,
		BlurGrace:      opts.blurGrace,
		MaxSkills:      opts.maxSkills,
		RequestTimeout: opts.timeout,
		Version:        Version,
	})
	if err != nil {
		return fmt.Errorf("initialize UI: %w", err)
	}
	prog := deps.factory(app)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	return nil
}
