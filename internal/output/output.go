// Package output renders command results as styled lines and tables.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/julianstephens/habitlog/internal/config"
)

// Theme carries the colors every adapter renders with. A zero Theme, or one
// with NoColor set, renders plain text.
type Theme struct {
	Accent  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	NoColor bool
}

// NewTheme builds a Theme from configured hex colors.
func NewTheme(cfg config.Theme, noColor bool) Theme {
	return Theme{
		Accent:  lipgloss.Color(cfg.Accent),
		Success: lipgloss.Color(cfg.Success),
		Error:   lipgloss.Color(cfg.Error),
		Info:    lipgloss.Color(cfg.Info),
		Muted:   lipgloss.Color(cfg.Muted),
		Border:  lipgloss.Color(cfg.Border),
		NoColor: noColor,
	}
}

// ColorEnabled reports whether w is a terminal and colors were not turned off.
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// Style returns a foreground style for c, or a plain style when colors are off.
func (t Theme) Style(c lipgloss.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if t.NoColor || c == "" {
		return s
	}
	return s.Foreground(c)
}

// Printer writes styled output to w.
type Printer struct {
	w     io.Writer
	theme Theme
}

func New(w io.Writer, theme Theme) *Printer {
	return &Printer{w: w, theme: theme}
}

func (p *Printer) Theme() Theme {
	return p.theme
}

func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.theme.Style(p.theme.Success).Render("✓ "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.theme.Style(p.theme.Error).Render("❌ "+fmt.Sprintf(format, args...)))
}

func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.theme.Style(p.theme.Info).Render(fmt.Sprintf(format, args...)))
}

// Muted prints secondary text such as empty-result notices.
func (p *Printer) Muted(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.theme.Style(p.theme.Muted).Render(fmt.Sprintf(format, args...)))
}

// Table prints rows under headers with a rounded border. An empty row set
// prints the empty message instead.
func (p *Printer) Table(t Tabular, empty string) {
	headers, rows := t.Headers(), t.Rows()
	if len(rows) == 0 {
		p.Muted("%s", empty)
		return
	}
	fmt.Fprintln(p.w, p.RenderTable(headers, rows))
}

// RenderTable returns the bordered table as a string.
func (p *Printer) RenderTable(headers []string, rows [][]string) string {
	header := p.theme.Style(p.theme.Accent).Bold(!p.theme.NoColor).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(p.theme.Style(p.theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	return tbl.String()
}
