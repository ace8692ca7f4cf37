package terminal

import (
	"context"
	"slices"
	"strings"
)

// ClearCommand resets the scrollback instead of producing output.
const ClearCommand = "clear"

// Output is anything the terminal can display.
type Output interface {
	Render(width int) string
}

// Text is plain preformatted output.
type Text string

// Render implements Output.
func (t Text) Render(int) string {
	return string(t)
}

// Command is a named action available at the prompt.
type Command struct {
	Name        string
	Description string
	// Run produces the command output. Async commands are run by the
	// driver off the event loop; the others run inside Reduce.
	Run   func(ctx context.Context) (Output, error)
	Async bool
	// Hidden commands work but are left out of the help listing.
	Hidden bool
}

// Table is an ordered, immutable set of commands keyed by lowercase name.
// Build a new Table to change it.
type Table struct {
	commands []Command
	index    map[string]int
}

// NewTable creates a table from commands in the given order.
// A later command with the same name replaces an earlier one.
func NewTable(commands ...Command) Table {
	t := Table{index: make(map[string]int, len(commands))}
	for _, cmd := range commands {
		cmd.Name = strings.ToLower(cmd.Name)
		if i, ok := t.index[cmd.Name]; ok {
			t.commands[i] = cmd
			continue
		}
		t.index[cmd.Name] = len(t.commands)
		t.commands = append(t.commands, cmd)
	}
	return t
}

// Lookup finds a command by name, ignoring case.
func (t Table) Lookup(name string) (Command, bool) {
	i, ok := t.index[strings.ToLower(name)]
	if !ok {
		return Command{}, false
	}
	return t.commands[i], true
}

// Commands returns the commands in table order.
func (t Table) Commands() []Command {
	return slices.Clone(t.commands)
}

// Names returns the command names in table order.
func (t Table) Names() []string {
	names := make([]string, len(t.commands))
	for i, cmd := range t.commands {
		names[i] = cmd.Name
	}
	return names
}

// Complete returns the names starting with prefix, ignoring case, in table order.
func (t Table) Complete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var matches []string
	for _, cmd := range t.commands {
		if strings.HasPrefix(cmd.Name, prefix) {
			matches = append(matches, cmd.Name)
		}
	}
	return matches
}

// Len returns the number of commands.
func (t Table) Len() int {
	return len(t.commands)
}
