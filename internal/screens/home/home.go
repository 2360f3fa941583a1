// Package home implements the role-aware main menu.
package home

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lernkraft/lernkraft/internal/router"
	"github.com/lernkraft/lernkraft/internal/screen"
	"github.com/lernkraft/lernkraft/internal/screens/admin"
	"github.com/lernkraft/lernkraft/internal/screens/chat"
	"github.com/lernkraft/lernkraft/internal/screens/learning"
	"github.com/lernkraft/lernkraft/internal/store"
	"github.com/lernkraft/lernkraft/internal/tutor"
	"github.com/lernkraft/lernkraft/internal/ui/components"
	"github.com/lernkraft/lernkraft/internal/ui/theme"
)

// LoginFactory builds a fresh login screen after logout. Injected to
// avoid a package cycle with the login screen.
type LoginFactory func() screen.Screen

// HomeScreen implements screen.Screen for the main menu.
type HomeScreen struct {
	user     *store.User
	users    store.UserRepo
	session  store.SessionRepo
	tutor    *tutor.Service
	newLogin LoginFactory

	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen for the given logged-in user.
func New(user *store.User, users store.UserRepo, session store.SessionRepo, tut *tutor.Service, newLogin LoginFactory) *HomeScreen {
	s := &HomeScreen{
		user:     user,
		users:    users,
		session:  session,
		tutor:    tut,
		newLogin: newLogin,
	}

	items := []components.MenuItem{
		{Label: "Lernbereich", Action: s.openLearning},
		{Label: "Chat", Action: s.openChat},
	}
	if user.Role == store.RoleAdmin {
		items = append(items, components.MenuItem{Label: "Verwaltung", Action: s.openAdmin})
	}
	items = append(items, components.MenuItem{Label: "Abmelden", Action: s.logout})

	s.menu = components.NewMenu(items)
	return s
}

func (s *HomeScreen) Init() tea.Cmd {
	return nil
}

func (s *HomeScreen) Title() string {
	return "Hauptmenü"
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) openLearning() tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: learning.New(s.tutor)}
	}
}

func (s *HomeScreen) openChat() tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: chat.New(s.user, s.tutor)}
	}
}

func (s *HomeScreen) openAdmin() tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: admin.New(s.user, s.users)}
	}
}

func (s *HomeScreen) logout() tea.Cmd {
	return func() tea.Msg {
		_ = s.session.ClearCurrentUser(context.Background())
		return router.ReplaceScreenMsg{Screen: s.newLogin()}
	}
}

func (s *HomeScreen) View(width, height int) string {
	greeting := theme.Title.Render(fmt.Sprintf("Hallo, %s!", s.user.FullName))
	subtitle := theme.Subtitle.Render(roleLabel(s.user.Role))

	var body string
	body += greeting + "\n"
	body += subtitle + "\n\n"
	body += s.menu.View()

	if !s.tutor.Available() {
		body += "\n" + theme.Hint.Render("Hinweis: Kein API-Schlüssel konfiguriert, der KI-Tutor ist offline.")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func roleLabel(role store.Role) string {
	switch role {
	case store.RoleAdmin:
		return "Administrator"
	case store.RoleTeacher:
		return "Lehrkraft"
	default:
		return "Schüler/in"
	}
}
