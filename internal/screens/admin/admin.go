// Package admin implements the user management screen. Admins can list,
// create and delete accounts.
package admin

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lernkraft/lernkraft/internal/screen"
	"github.com/lernkraft/lernkraft/internal/store"
	"github.com/lernkraft/lernkraft/internal/ui/components"
	"github.com/lernkraft/lernkraft/internal/ui/layout"
	"github.com/lernkraft/lernkraft/internal/ui/theme"
)

type mode int

const (
	modeList mode = iota
	modeAddUsername
	modeAddFullName
)

// usersLoadedMsg carries the user list.
type usersLoadedMsg struct {
	Users []store.User
	Err   error
}

// mutationDoneMsg is sent after a create or delete; the list reloads.
type mutationDoneMsg struct {
	Err error
}

// AdminScreen implements screen.Screen for user management.
type AdminScreen struct {
	self  *store.User
	users store.UserRepo

	mode   mode
	list   []store.User
	cursor int
	errMsg string
	loaded bool

	newUsername string
	newRole     store.Role
	input       components.TextInput
}

var _ screen.Screen = (*AdminScreen)(nil)
var _ screen.KeyHintProvider = (*AdminScreen)(nil)

// New creates the admin screen. self is the logged-in admin; it cannot
// delete its own account.
func New(self *store.User, users store.UserRepo) *AdminScreen {
	return &AdminScreen{
		self:    self,
		users:   users,
		newRole: store.RoleStudent,
	}
}

func (s *AdminScreen) Init() tea.Cmd {
	return s.load()
}

func (s *AdminScreen) Title() string {
	return "Verwaltung"
}

func (s *AdminScreen) KeyHints() []layout.KeyHint {
	if s.mode != modeList {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Weiter"},
			{Key: "Tab", Description: "Rolle wechseln"},
			{Key: "Esc", Description: "Abbrechen"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Auswählen"},
		{Key: "A", Description: "Benutzer anlegen"},
		{Key: "D", Description: "Löschen"},
		{Key: "Esc", Description: "Zurück"},
	}
}

func (s *AdminScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = "Benutzerliste konnte nicht geladen werden."
			return s, nil
		}
		s.list = msg.Users
		s.loaded = true
		if s.cursor >= len(s.list) {
			s.cursor = len(s.list) - 1
		}
		if s.cursor < 0 {
			s.cursor = 0
		}
		return s, nil

	case mutationDoneMsg:
		if msg.Err != nil {
			s.errMsg = "Änderung fehlgeschlagen."
			return s, nil
		}
		s.errMsg = ""
		return s, s.load()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode != modeList {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *AdminScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.mode != modeList {
		switch msg.String() {
		case "enter":
			return s.handleAddStep()
		case "tab":
			s.newRole = nextRole(s.newRole)
			return s, nil
		case "esc":
			s.mode = modeList
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.list)-1 {
			s.cursor++
		}
	case "a":
		s.mode = modeAddUsername
		s.input = components.NewTextInput("Benutzername...", 40)
		return s, s.input.Init()
	case "d":
		return s, s.deleteSelected()
	}
	return s, nil
}

func (s *AdminScreen) handleAddStep() (screen.Screen, tea.Cmd) {
	value := s.input.Value()
	if value == "" {
		return s, nil
	}

	switch s.mode {
	case modeAddUsername:
		s.newUsername = value
		s.mode = modeAddFullName
		s.input = components.NewTextInput("Vollständiger Name...", 60)
		return s, s.input.Init()

	case modeAddFullName:
		username, fullName, role := s.newUsername, value, s.newRole
		s.mode = modeList
		return s, func() tea.Msg {
			err := s.users.Add(context.Background(), &store.User{
				Username: username,
				FullName: fullName,
				Role:     role,
			})
			return mutationDoneMsg{Err: err}
		}
	}
	return s, nil
}

func (s *AdminScreen) deleteSelected() tea.Cmd {
	if s.cursor < 0 || s.cursor >= len(s.list) {
		return nil
	}
	target := s.list[s.cursor]
	if target.ID == s.self.ID {
		s.errMsg = "Du kannst dein eigenes Konto nicht löschen."
		return nil
	}
	return func() tea.Msg {
		err := s.users.Delete(context.Background(), target.ID)
		return mutationDoneMsg{Err: err}
	}
}

func (s *AdminScreen) load() tea.Cmd {
	return func() tea.Msg {
		users, err := s.users.List(context.Background())
		return usersLoadedMsg{Users: users, Err: err}
	}
}

func (s *AdminScreen) View(width, height int) string {
	var body string
	body += theme.Title.Render("Benutzerverwaltung") + "\n\n"

	if s.mode != modeList {
		prompt := "Benutzername:"
		if s.mode == modeAddFullName {
			prompt = "Name:"
		}
		body += theme.Body.Render(prompt) + "\n"
		body += s.input.View() + "\n\n"
		body += theme.Hint.Render(fmt.Sprintf("Rolle: %s (Tab wechselt)", s.newRole))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
	}

	if !s.loaded {
		body += theme.Hint.Render("Lade Benutzer...")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
	}

	header := fmt.Sprintf("  %-16s %-24s %-10s %s", "Benutzername", "Name", "Rolle", "Dabei seit")
	body += theme.Subtitle.Render(header) + "\n"

	for i, u := range s.list {
		row := fmt.Sprintf("%-16s %-24s %-10s %s", u.Username, u.FullName, u.Role, u.JoinedDate.Format("02.01.2006"))
		if i == s.cursor {
			body += theme.Selected.Render("▸ "+row) + "\n"
		} else {
			body += theme.Unselected.Render("  "+row) + "\n"
		}
	}

	if s.errMsg != "" {
		body += "\n" + theme.Incorrect.Render(s.errMsg)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func nextRole(r store.Role) store.Role {
	switch r {
	case store.RoleStudent:
		return store.RoleTeacher
	case store.RoleTeacher:
		return store.RoleAdmin
	default:
		return store.RoleStudent
	}
}
