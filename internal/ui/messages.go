package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"jobmatch/internal/jobs"
	"jobmatch/internal/suggest"
)

// FieldID names a form field.
type FieldID string

const (
	FieldRole     FieldID = "role"
	FieldCompany  FieldID = "company"
	FieldYears    FieldID = "years_of_experience"
	FieldSalary   FieldID = "expected_salary"
	FieldSkills   FieldID = "skills"
	FieldLocation FieldID = "location"
	FieldTargets  FieldID = "target_companies"
)

// FieldCommittedMsg is sent once per commit of a single-value field.
type FieldCommittedMsg struct {
	Field  FieldID
	Value  string
	Source suggest.Source
}

// ChipsChangedMsg is sent after every successful chip add or remove.
type ChipsChangedMsg struct {
	Field  FieldID
	Values []string
}

// blurCommitMsg is the delayed commit scheduled when a field loses focus.
type blurCommitMsg struct {
	Field FieldID
	Token suggest.Token
}

func scheduleBlurCommit(field FieldID, token suggest.Token, grace time.Duration) tea.Cmd {
	return tea.Tick(grace, func(time.Time) tea.Msg {
		return blurCommitMsg{Field: field, Token: token}
	})
}

func fieldCommitted(field FieldID, value string, src suggest.Source) tea.Cmd {
	return func() tea.Msg {
		return FieldCommittedMsg{Field: field, Value: value, Source: src}
	}
}

func chipsChanged(field FieldID, values []string) tea.Cmd {
	vs := append([]string(nil), values...)
	return func() tea.Msg {
		return ChipsChangedMsg{Field: field, Values: vs}
	}
}

// SubmitRequestedMsg is sent by the form once it validated and built a profile.
type SubmitRequestedMsg struct {
	Profile jobs.Profile
}

type catalogsLoadedMsg struct {
	catalogs jobs.Catalogs
	err      error
}

type analysisDoneMsg struct {
	result jobs.MatchResult
	err    error
}

type copyToastTickMsg struct{}

func scheduleCopyToastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return copyToastTickMsg{}
	})
}
