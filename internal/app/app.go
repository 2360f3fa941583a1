package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lernkraft/lernkraft/internal/router"
	"github.com/lernkraft/lernkraft/internal/screen"
	"github.com/lernkraft/lernkraft/internal/screens/home"
	"github.com/lernkraft/lernkraft/internal/screens/login"
	"github.com/lernkraft/lernkraft/internal/store"
	"github.com/lernkraft/lernkraft/internal/tutor"
	"github.com/lernkraft/lernkraft/internal/ui/layout"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	Users   store.UserRepo
	Session store.SessionRepo
	Tutor   *tutor.Service
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int

	// Header label for the logged-in user, refreshed on login/logout.
	userName string
	userRole string
}

// newAppModel creates the root model. When the store still holds a
// session pointer the previous user is logged back in; otherwise the
// app starts at the login screen.
func newAppModel(opts Options) AppModel {
	m := AppModel{
		opts:   opts,
		router: router.New(initialScreen(opts)),
	}
	m.userName, m.userRole = m.currentUserLabel()
	return m
}

func initialScreen(opts Options) screen.Screen {
	loginScreen := login.New(opts.Users, opts.Session, opts.Tutor)

	user, err := opts.Session.CurrentUser(context.Background())
	if err != nil {
		return loginScreen
	}
	if user == nil {
		// Either nobody was logged in or the pointer went stale (user
		// deleted since last run).
		_ = opts.Session.ClearCurrentUser(context.Background())
		return loginScreen
	}

	newLogin := func() screen.Screen {
		return login.New(opts.Users, opts.Session, opts.Tutor)
	}
	return home.New(user, opts.Users, opts.Session, opts.Tutor, newLogin)
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}

	case router.ReplaceScreenMsg:
		// Screen replacement is how login and logout happen; the
		// session pointer may have changed.
		cmd := m.router.Update(msg)
		m.userName, m.userRole = m.currentUserLabel()
		return m, cmd
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.userName, m.userRole, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigieren"},
			{Key: "Enter", Description: "Auswählen"},
			{Key: "Ctrl+C", Description: "Beenden"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// currentUserLabel resolves the header's user display from the session
// pointer. Empty strings mean nobody is logged in.
func (m AppModel) currentUserLabel() (name, role string) {
	user, err := m.opts.Session.CurrentUser(context.Background())
	if err != nil || user == nil {
		return "", ""
	}
	return user.FullName, string(user.Role)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
