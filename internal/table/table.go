// Package table prints API resources as bordered tables or CSV.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Builder provides a convenient interface for creating styled tables using lipgloss/table
type Builder struct {
	headers []string
	rows    [][]string
	style   Style
	output  io.Writer
}

// Style defines the visual styling options for tables
type Style struct {
	Border      lipgloss.Border
	HeaderStyle lipgloss.Style
	CellStyle   lipgloss.Style
	// Width caps the table width (0 for auto-width)
	Width int
	// PaddingLeft and PaddingRight pad every cell
	PaddingLeft  int
	PaddingRight int
}

// DefaultStyle returns a rounded table with a bold cyan header row.
func DefaultStyle() Style {
	return Style{
		Border:       lipgloss.RoundedBorder(),
		HeaderStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ADD8")),
		CellStyle:    lipgloss.NewStyle(),
		PaddingLeft:  1,
		PaddingRight: 1,
	}
}

// New creates a new table builder with default styling
func New() *Builder {
	return NewWithStyle(DefaultStyle())
}

// NewWithStyle creates a new table builder with custom styling
func NewWithStyle(style Style) *Builder {
	return &Builder{
		style:  style,
		output: os.Stdout,
	}
}

// SetOutput sets the output writer for the table
func (b *Builder) SetOutput(w io.Writer) *Builder {
	b.output = w
	return b
}

// SetWidth caps the rendered width.
func (b *Builder) SetWidth(width int) *Builder {
	b.style.Width = width
	return b
}

// Headers sets the table headers
func (b *Builder) Headers(headers ...string) *Builder {
	b.headers = make([]string, len(headers))
	copy(b.headers, headers)
	return b
}

// Row adds a data row to the table
func (b *Builder) Row(columns ...string) *Builder {
	row := make([]string, len(columns))
	copy(row, columns)
	b.rows = append(b.rows, row)
	return b
}

// Rows adds multiple data rows to the table
func (b *Builder) Rows(rows [][]string) *Builder {
	for _, row := range rows {
		b.Row(row...)
	}
	return b
}

// RowCount returns the number of data rows in the table
func (b *Builder) RowCount() int {
	return len(b.rows)
}

// Build renders the table as a string.
func (b *Builder) Build() string {
	t := table.New().
		Border(b.style.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := b.style.CellStyle
			if row == table.HeaderRow {
				style = b.style.HeaderStyle
			}
			return style.
				PaddingLeft(b.style.PaddingLeft).
				PaddingRight(b.style.PaddingRight)
		})

	if b.style.Width > 0 {
		t.Width(b.style.Width)
	}
	if len(b.headers) > 0 {
		t.Headers(b.headers...)
	}
	for _, row := range b.rows {
		t.Row(row...)
	}

	return t.Render()
}

// Println writes the table followed by a newline to the configured output writer
func (b *Builder) Println() error {
	_, err := fmt.Fprintln(b.output, b.Build())
	return err
}

// WriteCSV writes the headers and rows as CSV to the output writer.
func (b *Builder) WriteCSV() error {
	w := csv.NewWriter(b.output)
	if len(b.headers) > 0 {
		if err := w.Write(b.headers); err != nil {
			return err
		}
	}
	if err := w.WriteAll(b.rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
