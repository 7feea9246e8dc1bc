package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/output"
	"github.com/julianstephens/habitlog/internal/tracker"
)

type state int

const (
	stateMenu state = iota
	stateForm
	stateResult
)

// resultMsg carries the rendered outcome of an action.
type resultMsg struct {
	text string
	err  error
}

type Model struct {
	ctx    context.Context
	svc    *tracker.Service
	theme  output.Theme
	today  func() time.Time
	keys   KeyMap
	help   help.Model
	styles styles

	state   state
	menu    list.Model
	form    *huh.Form
	current *action
	data    *formData

	result    string
	resultErr bool
	width     int
	height    int
}

func NewModel(ctx context.Context, svc *tracker.Service, theme output.Theme, today func() time.Time) Model {
	acts := actions()
	items := make([]list.Item, len(acts))
	for i, a := range acts {
		items[i] = a
	}
	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = constants.AppName
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)

	return Model{
		ctx:    ctx,
		svc:    svc,
		theme:  theme,
		today:  today,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: newStyles(theme),
		state:  stateMenu,
		menu:   menu,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// start opens the selected action's form, or runs it at once when it takes no input.
func (m Model) start(a action) (Model, tea.Cmd) {
	m.current = &a
	m.data = &formData{}
	if a.form == nil {
		return m, m.execute()
	}
	m.form = a.form(m.data, m.today()).WithTheme(huh.ThemeDracula())
	m.state = stateForm
	return m, m.form.Init()
}

func (m Model) execute() tea.Cmd {
	a, d := *m.current, m.data
	e := env{ctx: m.ctx, svc: m.svc, today: m.today()}
	theme := m.theme
	return func() tea.Msg {
		var sb strings.Builder
		e.out = output.New(&sb, theme)
		if err := a.run(e, d); err != nil {
			logger.Debug("TUI action failed", "action", a.title, "error", err)
			return resultMsg{err: err}
		}
		return resultMsg{text: sb.String()}
	}
}

func (m Model) backToMenu() Model {
	m.state = stateMenu
	m.form = nil
	m.current = nil
	m.data = nil
	m.result = ""
	m.resultErr = false
	return m
}
