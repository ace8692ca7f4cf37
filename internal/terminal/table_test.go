package terminal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewTable(t *testing.T) {
	table := NewTable(
		Command{Name: "Help", Description: "first"},
		Command{Name: "about"},
		Command{Name: "help", Description: "second"},
	)

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	names := table.Names()
	if names[0] != "help" || names[1] != "about" {
		t.Errorf("Names() = %v, want [help about]", names)
	}

	cmd, ok := table.Lookup("HELP")
	if !ok {
		t.Fatal("Lookup(HELP) should find help")
	}
	if cmd.Description != "second" {
		t.Errorf("duplicate name should replace in place, got %q", cmd.Description)
	}

	if _, ok := table.Lookup("missing"); ok {
		t.Error("Lookup(missing) should fail")
	}
}

func TestTableComplete(t *testing.T) {
	table := NewTable(
		Command{Name: "projects"},
		Command{Name: "projects-ml"},
		Command{Name: "contact"},
	)

	tests := []struct {
		prefix string
		want   []string
	}{
		{prefix: "pro", want: []string{"projects", "projects-ml"}},
		{prefix: "PROJECTS-", want: []string{"projects-ml"}},
		{prefix: "c", want: []string{"contact"}},
		{prefix: "z", want: nil},
		{prefix: "", want: []string{"projects", "projects-ml", "contact"}},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, table.Complete(tt.prefix)); diff != "" {
				t.Errorf("Complete(%q) mismatch (-want +got):\n%s", tt.prefix, diff)
			}
		})
	}
}

func TestTableCommandsIsACopy(t *testing.T) {
	table := NewTable(Command{Name: "help"})
	cmds := table.Commands()
	cmds[0].Name = "changed"

	if _, ok := table.Lookup("help"); !ok {
		t.Error("modifying Commands() result must not affect the table")
	}
	if table.Names()[0] != "help" {
		t.Error("table order changed after modifying Commands() result")
	}
}

func TestTextRender(t *testing.T) {
	if got := Text("hello").Render(10); got != "hello" {
		t.Errorf("Text.Render() = %q", got)
	}
}
