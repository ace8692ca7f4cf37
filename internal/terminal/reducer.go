package terminal

import (
	"context"
	"fmt"
	"strings"
)

// Event is an input to Reduce.
type Event interface {
	event()
}

// Submit runs the typed line.
type Submit struct {
	Raw string
}

// Resolved delivers the result of an async Job.
type Resolved struct {
	EntryID string
	Output  Output
	Err     error
}

// RecallPrevious moves to the previous (older) recalled command.
type RecallPrevious struct{}

// RecallNext moves to the next (newer) recalled command.
type RecallNext struct{}

// Complete tab-completes the current input against the command table.
type Complete struct{}

// SetInput replaces the input line.
type SetInput struct {
	Value string
}

// Reset clears the scrollback back to the banner.
type Reset struct{}

// SetTable swaps in a rebuilt command table.
type SetTable struct {
	Table Table
}

// SetBanner replaces the banner, including the banner entries already in
// the scrollback.
type SetBanner struct {
	Banner Output
}

func (Submit) event()         {}
func (Resolved) event()       {}
func (RecallPrevious) event() {}
func (RecallNext) event()     {}
func (Complete) event()       {}
func (SetInput) event()       {}
func (Reset) event()          {}
func (SetTable) event()       {}
func (SetBanner) event()      {}

// Job is an async command the caller must run and report back with the
// Resolved event returned by Run.
type Job struct {
	EntryID string
	Command Command
}

// Run executes the command. Errors and panics are captured in the result.
func (j Job) Run(ctx context.Context) Resolved {
	out, err := invoke(ctx, j.Command)
	return Resolved{EntryID: j.EntryID, Output: out, Err: err}
}

// Reduce applies ev to s.
func Reduce(s State, ev Event) (State, []Job) {
	switch ev := ev.(type) {
	case Submit:
		return submit(s, ev.Raw)
	case Resolved:
		return resolve(s, ev), nil
	case RecallPrevious:
		return recallPrevious(s), nil
	case RecallNext:
		return recallNext(s), nil
	case Complete:
		return complete(s), nil
	case SetInput:
		s.Input = ev.Value
		return s, nil
	case Reset:
		s.History = s.bannerHistory()
		return s, nil
	case SetTable:
		s.Table = ev.Table
		return s, nil
	case SetBanner:
		return setBanner(s, ev.Banner), nil
	default:
		return s, nil
	}
}

func setBanner(s State, banner Output) State {
	s.banner = banner
	history := make([]Entry, len(s.History))
	for i, e := range s.History {
		if e.Kind == KindBanner {
			e.Output = banner
		}
		history[i] = e
	}
	s.History = history
	return s
}

// NotFoundMessage is the error line for an unknown command.
func NotFoundMessage(cmd string) string {
	return fmt.Sprintf("Command not found: %s. Type \"help\" for available commands.", cmd)
}

// ErrorMessage is the error line for a command that failed.
func ErrorMessage(err error) string {
	return "Error executing command: " + err.Error()
}

func submit(s State, raw string) (State, []Job) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return s, nil
	}

	s.Recall = s.appendRecall(name)
	s.Cursor = -1
	s.Input = ""

	cmd, ok := s.Table.Lookup(name)
	if ok && cmd.Name == ClearCommand {
		s.History = s.bannerHistory()
		return s, nil
	}

	echo := s.entry(KindCommand, raw, nil)
	if !ok {
		s.History = s.appendHistory(echo, s.entry(KindError, NotFoundMessage(name), nil))
		return s, nil
	}

	if cmd.Async {
		loading := s.entry(KindLoading, cmd.Name, nil)
		s.History = s.appendHistory(echo, loading)
		return s, []Job{{EntryID: loading.ID, Command: cmd}}
	}

	out, err := invoke(context.Background(), cmd)
	s.History = s.appendHistory(echo, s.result(out, err))
	return s, nil
}

// result turns a command outcome into a history entry.
func (s State) result(out Output, err error) Entry {
	if err != nil {
		return s.entry(KindError, ErrorMessage(err), nil)
	}
	if out == nil {
		out = Text("")
	}
	return s.entry(KindOutput, "", out)
}

func resolve(s State, ev Resolved) State {
	e := s.result(ev.Output, ev.Err)
	for i, entry := range s.History {
		if entry.ID == ev.EntryID && entry.Kind == KindLoading {
			e.ID = entry.ID
			history := make([]Entry, len(s.History))
			copy(history, s.History)
			history[i] = e
			s.History = history
			return s
		}
	}
	// The placeholder was cleared or scrolled out.
	s.History = s.appendHistory(e)
	return s
}

func recallPrevious(s State) State {
	if len(s.Recall) == 0 {
		return s
	}
	if s.Cursor < 0 {
		s.Cursor = len(s.Recall) - 1
	} else {
		s.Cursor = max(0, s.Cursor-1)
	}
	s.Input = s.Recall[s.Cursor]
	return s
}

func recallNext(s State) State {
	if s.Cursor < 0 {
		return s
	}
	if s.Cursor >= len(s.Recall)-1 {
		s.Cursor = -1
		s.Input = ""
		return s
	}
	s.Cursor++
	s.Input = s.Recall[s.Cursor]
	return s
}

func complete(s State) State {
	matches := s.Table.Complete(s.Input)
	switch len(matches) {
	case 0:
		return s
	case 1:
		s.Input = matches[0]
		return s
	default:
		s.History = s.appendHistory(
			s.entry(KindCommand, s.Input, nil),
			s.entry(KindListing, strings.Join(matches, "  "), nil),
		)
		return s
	}
}

// invoke runs cmd, converting a panic into an error.
func invoke(ctx context.Context, cmd Command) (out Output, err error) {
	if cmd.Run == nil {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%v", r)
		}
	}()
	return cmd.Run(ctx)
}
