package tui

import (
	"strings"
)

func (m Model) View() string {
	var b strings.Builder
	switch m.state {
	case stateForm:
		b.WriteString(m.styles.banner.Render(m.current.title))
		b.WriteString("\n")
		b.WriteString(m.form.View())
		b.WriteString("\n")
		b.WriteString(m.styles.hint.Render("esc to cancel"))
	case stateResult:
		if m.current != nil {
			b.WriteString(m.styles.banner.Render(m.current.title))
			b.WriteString("\n")
		}
		if m.resultErr {
			b.WriteString(m.styles.failure.Render("❌ " + m.result))
		} else {
			b.WriteString(strings.TrimRight(m.result, "\n"))
		}
		b.WriteString("\n\n")
		b.WriteString(m.styles.hint.Render("enter or esc to return, q to quit"))
	default:
		b.WriteString(m.menu.View())
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	return m.styles.doc.Render(b.String())
}
