package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"jobmatch/internal/config"
	"jobmatch/internal/jobs"
	"jobmatch/internal/ui"
)

type noopProgram struct {
	err error
}

func (p noopProgram) Run() (tea.Model, error) {
	return nil, p.err
}

func testDeps(client *jobs.MockClient, got *ui.Config) runDeps {
	return runDeps{
		newClient: func(runtimeOptions) jobs.Client { return client },
		builder: func(cfg ui.Config) (*ui.App, error) {
			if got != nil {
				*got = cfg
			}
			return &ui.App{}, nil
		},
		factory: func(*ui.App) programRunner { return noopProgram{} },
	}
}

func healthyClient() *jobs.MockClient {
	client := jobs.NewMockClient()
	client.HealthFn = func(context.Context) error { return nil }
	return client
}

func TestCollectOverridesOnlyChangedFlags(t *testing.T) {
	cmd := newRootCmd(io.Discard, io.Discard)
	if err := cmd.ParseFlags([]string{"--api-url", " http://jobs.internal/api ", "--blur-grace", "200ms"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	want := map[string]any{
		config.KeyAPIBaseURL: "http://jobs.internal/api",
		config.KeyBlurGrace:  200 * time.Millisecond,
	}
	if diff := cmp.Diff(want, collectOverrides(cmd)); diff != "" {
		t.Errorf("overrides mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectOverridesNoFlags(t *testing.T) {
	cmd := newRootCmd(io.Discard, io.Discard)
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if got := collectOverrides(cmd); len(got) != 0 {
		t.Errorf("expected no overrides, got %v", got)
	}
}

func TestFlagsOverrideRuntimeOptions(t *testing.T) {
	defer config.ResetForTesting(t)()

	cmd := newRootCmd(io.Discard, io.Discard)
	if err := cmd.ParseFlags([]string{"--api-url", "http://jobs.test/api", "--blur-grace", "200ms", "--debug"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if err := config.ApplyOverrides(collectOverrides(cmd)); err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}

	want := runtimeOptions{
		apiURL:    "http://jobs.test/api",
		timeout:   config.DefaultAPITimeout,
		blurGrace: 200 * time.Millisecond,
		maxSkills: config.DefaultSkillsMaxItems,
		theme:     config.DefaultTheme,
		debug:     true,
	}
	if diff := cmp.Diff(want, loadRuntimeOptions(), cmp.AllowUnexported(runtimeOptions{})); diff != "" {
		t.Errorf("runtime options mismatch (-want +got):\n%s", diff)
	}
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out, io.Discard)
	cmd.SetArgs([]string{"--version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "jobmatch version "+Version) {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func TestRootRejectsArgs(t *testing.T) {
	cmd := newRootCmd(io.Discard, io.Discard)
	cmd.SetArgs([]string{"extra"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected positional arguments to be rejected")
	}
}

func TestRunBuildsApp(t *testing.T) {
	client := healthyClient()
	var cfg ui.Config
	var stderr bytes.Buffer

	opts := runtimeOptions{
		apiURL:    "http://localhost:8000/api",
		timeout:   10 * time.Second,
		blurGrace: 200 * time.Millisecond,
		maxSkills: 12,
	}
	if err := run(&stderr, opts, testDeps(client, &cfg)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if cfg.Client != client {
		t.Error("expected the constructed client to reach the UI")
	}
	if len(cfg.WordLists.Skills) == 0 || len(cfg.WordLists.Companies) == 0 {
		t.Error("expected embedded word lists")
	}
	if cfg.BlurGrace != opts.blurGrace || cfg.MaxSkills != 12 || cfg.RequestTimeout != opts.timeout {
		t.Errorf("options not passed through: %+v", cfg)
	}
	if client.HealthCalls != 1 {
		t.Errorf("expected one health check, got %d", client.HealthCalls)
	}
	if stderr.Len() != 0 {
		t.Errorf("expected no warnings, got %q", stderr.String())
	}
}

func TestRunWarnsWhenServiceDown(t *testing.T) {
	client := jobs.NewMockClient()
	client.HealthFn = func(context.Context) error { return errors.New("connection refused") }
	var stderr bytes.Buffer

	if err := run(&stderr, runtimeOptions{apiURL: "http://down"}, testDeps(client, nil)); err != nil {
		t.Fatalf("expected startup to continue, got %v", err)
	}
	out := stderr.String()
	for _, want := range []string{jobs.MsgServiceUnhealthy, "http://down", "connection refused"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in warning %q", want, out)
		}
	}
}

func TestRunWarnsOnUnknownTheme(t *testing.T) {
	var stderr bytes.Buffer
	if err := run(&stderr, runtimeOptions{theme: "solarized"}, testDeps(healthyClient(), nil)); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(stderr.String(), `unknown theme "solarized"`) {
		t.Errorf("expected theme warning, got %q", stderr.String())
	}
}

func TestRunErrors(t *testing.T) {
	builderErr := errors.New("builder failed")
	runErr := errors.New("terminal gone")

	tests := []struct {
		name   string
		mutate func(*runDeps)
		want   string
	}{
		{
			name: "Builder",
			mutate: func(d *runDeps) {
				d.builder = func(ui.Config) (*ui.App, error) { return nil, builderErr }
			},
			want: "initialize UI: builder failed",
		},
		{
			name: "Program",
			mutate: func(d *runDeps) {
				d.factory = func(*ui.App) programRunner { return noopProgram{err: runErr} }
			},
			want: "run UI: terminal gone",
		},
		{
			name:   "NilProgram",
			mutate: func(d *runDeps) { d.factory = func(*ui.App) programRunner { return nil } },
			want:   "program is nil",
		},
		{
			name:   "MissingDeps",
			mutate: func(d *runDeps) { d.builder = nil },
			want:   "incomplete program dependencies",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := testDeps(healthyClient(), nil)
			tt.mutate(&deps)
			err := run(io.Discard, runtimeOptions{}, deps)
			if err == nil || err.Error() != tt.want {
				t.Errorf("expected %q, got %v", tt.want, err)
			}
		})
	}
}

func TestPrintVersion(t *testing.T) {
	var out bytes.Buffer
	printVersion(&out)
	if !strings.Contains(out.String(), "Go version:") {
		t.Errorf("expected Go version line, got %q", out.String())
	}
}
