// Package terminal models the portfolio command prompt as a pure reducer.
//
// State holds the input line, the scrollback history and the command recall
// buffer. Reduce applies one Event and returns the next State together with
// any asynchronous Jobs the caller has to run and report back as Resolved.
package terminal

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultMaxHistory bounds the scrollback.
	DefaultMaxHistory = 1000
	// DefaultMaxRecall bounds the command recall buffer.
	DefaultMaxRecall = 100
)

// Kind identifies what a history entry shows.
type Kind int

const (
	KindBanner  Kind = iota // Welcome banner
	KindCommand             // Echo of a submitted line
	KindOutput              // Command result
	KindError               // Error line
	KindLoading             // Placeholder for a running async command
	KindListing             // Completion candidates
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBanner:
		return "banner"
	case KindCommand:
		return "command"
	case KindOutput:
		return "output"
	case KindError:
		return "error"
	case KindLoading:
		return "loading"
	case KindListing:
		return "listing"
	default:
		return "unknown"
	}
}

// Entry is one item of scrollback.
type Entry struct {
	ID        string
	Kind      Kind
	Text      string // Echoed input, error message, listing or loading command name
	Output    Output // Set for KindBanner and KindOutput
	CreatedAt time.Time
}

// State is the complete prompt state. Treat it as a value: Reduce never
// modifies the slices of the State it is given.
type State struct {
	Input   string
	History []Entry
	// Recall holds submitted commands, oldest first.
	Recall []string
	// Cursor indexes Recall while navigating and is -1 otherwise.
	Cursor int
	Table  Table

	banner     Output
	maxHistory int
	maxRecall  int
	now        func() time.Time
	newID      func() string
}

// Option configures a new State.
type Option func(*State)

// WithMaxHistory bounds the scrollback; non-positive values are ignored.
func WithMaxHistory(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.maxHistory = n
		}
	}
}

// WithMaxRecall bounds the recall buffer; non-positive values are ignored.
func WithMaxRecall(n int) Option {
	return func(s *State) {
		if n > 0 {
			s.maxRecall = n
		}
	}
}

// WithClock sets the entry timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		s.now = now
	}
}

// WithIDs sets the entry ID generator.
func WithIDs(newID func() string) Option {
	return func(s *State) {
		s.newID = newID
	}
}

// New returns the initial state: empty input, empty recall and a history
// holding only the banner.
func New(table Table, banner Output, opts ...Option) State {
	s := State{
		Cursor:     -1,
		Table:      table,
		banner:     banner,
		maxHistory: DefaultMaxHistory,
		maxRecall:  DefaultMaxRecall,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(&s)
	}
	s.History = s.bannerHistory()
	return s
}

// MaxHistory returns the scrollback bound.
func (s State) MaxHistory() int {
	return s.maxHistory
}

// MaxRecall returns the recall buffer bound.
func (s State) MaxRecall() int {
	return s.maxRecall
}

// Navigating reports whether the recall cursor points into the buffer.
func (s State) Navigating() bool {
	return s.Cursor >= 0
}

func (s State) entry(kind Kind, text string, out Output) Entry {
	return Entry{
		ID:        s.newID(),
		Kind:      kind,
		Text:      text,
		Output:    out,
		CreatedAt: s.now(),
	}
}

func (s State) bannerHistory() []Entry {
	if s.banner == nil {
		return nil
	}
	return []Entry{s.entry(KindBanner, "", s.banner)}
}

// appendHistory returns a new history with entries added, dropping the
// oldest entries beyond the bound.
func (s State) appendHistory(entries ...Entry) []Entry {
	history := make([]Entry, 0, len(s.History)+len(entries))
	history = append(history, s.History...)
	history = append(history, entries...)
	if over := len(history) - s.maxHistory; over > 0 {
		history = history[over:]
	}
	return history
}

// appendRecall returns a new recall buffer with cmd added, dropping the
// oldest commands beyond the bound.
func (s State) appendRecall(cmd string) []string {
	recall := make([]string, 0, len(s.Recall)+1)
	recall = append(recall, s.Recall...)
	recall = append(recall, cmd)
	if over := len(recall) - s.maxRecall; over > 0 {
		recall = recall[over:]
	}
	return recall
}
