package suggest

import "strings"

// Env is everything a transition needs besides the state itself. Fields own
// their Env and rebuild it whenever the catalog or their committed chips change.
type Env struct {
	Catalog  []string
	Excluded []string
	// Freeform permits committing text that matches no suggestion.
	Freeform bool
	// CommitOnBlur commits a freeform query after focus leaves the field.
	CommitOnBlur bool
}

// Suggestions returns the visible list for the given query.
func (e Env) Suggestions(query string) []string {
	return Filter(e.Catalog, query, e.Excluded)
}

// Token identifies one open/close cycle of a field. A delayed blur commit
// carries the token it was scheduled with and is dropped unless the field is
// still in that cycle and nothing has been committed during it.
type Token struct {
	cycle uint64
}

// State is the per-field input state. The zero value is a closed, empty field.
type State struct {
	Query     string
	Open      bool
	Highlight int

	cycle     uint64
	committed bool
}

// Token returns the commit token of the current cycle.
func (s State) Token() Token {
	return Token{cycle: s.cycle}
}

// CommittedThisCycle reports whether a commit already happened in the
// current open/close cycle.
func (s State) CommittedThisCycle() bool {
	return s.committed
}

// Source says which interaction produced a commit.
type Source int

const (
	SourceSelect Source = iota
	SourceEnter
	SourceBlur
)

func (s Source) String() string {
	switch s {
	case SourceSelect:
		return "select"
	case SourceEnter:
		return "enter"
	case SourceBlur:
		return "blur"
	default:
		return "unknown"
	}
}

// Outcome describes the side effects a transition asks the host to perform.
type Outcome struct {
	// Committed is set when Value became the field's committed value.
	Committed bool
	Value     string
	Source    Source

	// PreventDefault suppresses the host's default handling (form submission
	// on Enter).
	PreventDefault bool

	// ScheduleBlur asks the host to deliver BlurTimeout{Token} after the
	// grace delay.
	ScheduleBlur bool
	Token        Token
}

// Event is an input to Transition.
type Event interface {
	event()
}

type (
	// Focus is focus entering the field.
	Focus struct{}
	// Input is a keystroke that changed the query text.
	Input struct{ Query string }
	ArrowDown struct{}
	ArrowUp   struct{}
	Escape    struct{}
	Enter     struct{}
	// Select is an explicit click on a suggestion.
	Select struct{ Value string }
	// PointerDownOutside is a press outside the field's bounds.
	PointerDownOutside struct{}
	// Blur is focus leaving the field.
	Blur struct{}
	// BlurTimeout is the grace timer scheduled by Blur expiring.
	BlurTimeout struct{ Token Token }
	// ListChanged tells the machine the filtered list changed for reasons
	// other than typing, e.g. a chip was added to Excluded.
	ListChanged struct{}
	// Teardown invalidates any pending timer; the field is going away.
	Teardown struct{}
)

func (Focus) event()              {}
func (Input) event()              {}
func (ArrowDown) event()          {}
func (ArrowUp) event()            {}
func (Escape) event()             {}
func (Enter) event()              {}
func (Select) event()             {}
func (PointerDownOutside) event() {}
func (Blur) event()               {}
func (BlurTimeout) event()        {}
func (ListChanged) event()        {}
func (Teardown) event()           {}

// Transition applies ev to s and returns the next state plus the effects the
// host must carry out. It never mutates its arguments.
func Transition(env Env, s State, ev Event) (State, Outcome) {
	var out Outcome

	switch ev := ev.(type) {
	case Focus:
		s = s.open()

	case Input:
		changed := ev.Query != s.Query
		s.Query = ev.Query
		s = s.open()
		if changed {
			s.Highlight = 0
		}

	case ArrowDown:
		if s.Open {
			if n := len(env.Suggestions(s.Query)); s.Highlight < n-1 {
				s.Highlight++
			}
		}

	case ArrowUp:
		if s.Open && s.Highlight > 0 {
			s.Highlight--
		}

	case Escape:
		s = s.close()

	case Enter:
		out.PreventDefault = true
		list := env.Suggestions(s.Query)
		trimmed := strings.TrimSpace(s.Query)
		switch {
		case s.Open && len(list) > 0:
			value := list[clamp(s.Highlight, len(list))]
			s.Query = value
			s = s.close()
			s, out = s.commit(out, value, SourceEnter)
		case env.Freeform && trimmed != "":
			s = s.close()
			s, out = s.commit(out, trimmed, SourceEnter)
		}

	case Select:
		if ev.Value == "" {
			break
		}
		s.Query = ev.Value
		s = s.close()
		s, out = s.commit(out, ev.Value, SourceSelect)

	case PointerDownOutside:
		if s.Open {
			s = s.close()
		}

	case Blur:
		s = s.close()
		if env.Freeform && env.CommitOnBlur && !s.committed && strings.TrimSpace(s.Query) != "" {
			out.ScheduleBlur = true
			out.Token = s.Token()
		}

	case BlurTimeout:
		trimmed := strings.TrimSpace(s.Query)
		if ev.Token != s.Token() || s.committed || !env.Freeform || trimmed == "" {
			break
		}
		s, out = s.commit(out, trimmed, SourceBlur)

	case ListChanged:
		s.Highlight = 0

	case Teardown:
		s = s.close()
		s.cycle++
		s.committed = false
	}

	s.Highlight = normalizeHighlight(s, env)
	return s, out
}

func (s State) open() State {
	if s.Open {
		return s
	}
	s.Open = true
	s.Highlight = 0
	s.cycle++
	s.committed = false
	return s
}

func (s State) close() State {
	s.Open = false
	s.Highlight = 0
	return s
}

func (s State) commit(out Outcome, value string, src Source) (State, Outcome) {
	s.committed = true
	out.Committed = true
	out.Value = value
	out.Source = src
	return s, out
}

func normalizeHighlight(s State, env Env) int {
	if !s.Open {
		return 0
	}
	n := len(env.Suggestions(s.Query))
	if n == 0 {
		return 0
	}
	return clamp(s.Highlight, n)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
