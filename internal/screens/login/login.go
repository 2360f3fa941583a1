// Package login implements the sign-in screen. Login is by username
// only; there are no passwords. Unknown students can register inline.
package login

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lernkraft/lernkraft/internal/router"
	"github.com/lernkraft/lernkraft/internal/screen"
	"github.com/lernkraft/lernkraft/internal/screens/home"
	"github.com/lernkraft/lernkraft/internal/store"
	"github.com/lernkraft/lernkraft/internal/tutor"
	"github.com/lernkraft/lernkraft/internal/ui/components"
	"github.com/lernkraft/lernkraft/internal/ui/layout"
	"github.com/lernkraft/lernkraft/internal/ui/theme"
)

type mode int

const (
	modeLogin mode = iota
	modeRegisterName // asking for the full name of a new student
)

// loginResultMsg carries the user lookup result.
type loginResultMsg struct {
	User *store.User
	Err  error
}

// registeredMsg carries the outcome of creating a new student account.
type registeredMsg struct {
	User *store.User
	Err  error
}

// LoginScreen implements screen.Screen for sign-in and registration.
type LoginScreen struct {
	users   store.UserRepo
	session store.SessionRepo
	tutor   *tutor.Service

	mode     mode
	username string
	input    components.TextInput
	errMsg   string
	infoMsg  string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login screen with injected repositories.
func New(users store.UserRepo, session store.SessionRepo, tut *tutor.Service) *LoginScreen {
	return &LoginScreen{
		users:   users,
		session: session,
		tutor:   tut,
		input:   components.NewTextInput("Benutzername...", 40),
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *LoginScreen) Title() string {
	return "Anmeldung"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	if s.mode == modeRegisterName {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Registrieren"},
			{Key: "Esc", Description: "Abbrechen"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Anmelden"},
		{Key: "Ctrl+C", Description: "Beenden"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		return s.handleLoginResult(msg)

	case registeredMsg:
		if msg.Err != nil {
			s.errMsg = "Registrierung fehlgeschlagen."
			return s, nil
		}
		return s, s.enter(msg.User)

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s.handleSubmit()
		case "esc":
			if s.mode == modeRegisterName {
				s.mode = modeLogin
				s.username = ""
				s.errMsg = ""
				s.infoMsg = ""
				s.input = components.NewTextInput("Benutzername...", 40)
				return s, s.input.Init()
			}
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *LoginScreen) handleSubmit() (screen.Screen, tea.Cmd) {
	value := s.input.Value()
	if value == "" {
		return s, nil
	}

	if s.mode == modeRegisterName {
		return s, s.register(s.username, value)
	}

	s.errMsg = ""
	return s, s.lookup(value)
}

func (s *LoginScreen) handleLoginResult(msg loginResultMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = "Anmeldung fehlgeschlagen. Bitte versuche es erneut."
		return s, nil
	}
	if msg.User == nil {
		// Unknown username: offer inline student registration.
		s.username = s.input.Value()
		s.mode = modeRegisterName
		s.infoMsg = fmt.Sprintf("Benutzer %q nicht gefunden. Wie heißt du? (legt ein Schülerkonto an)", s.username)
		s.errMsg = ""
		s.input = components.NewTextInput("Vollständiger Name...", 60)
		return s, s.input.Init()
	}
	return s, s.enter(msg.User)
}

// lookup resolves the username against the user store.
func (s *LoginScreen) lookup(username string) tea.Cmd {
	return func() tea.Msg {
		user, err := s.users.FindByUsername(context.Background(), username)
		return loginResultMsg{User: user, Err: err}
	}
}

// register creates a new student account and logs it in.
func (s *LoginScreen) register(username, fullName string) tea.Cmd {
	return func() tea.Msg {
		user := &store.User{
			Username: username,
			FullName: fullName,
			Role:     store.RoleStudent,
		}
		if err := s.users.Add(context.Background(), user); err != nil {
			return registeredMsg{Err: err}
		}
		return registeredMsg{User: user}
	}
}

// enter persists the session pointer and replaces the screen with home.
func (s *LoginScreen) enter(user *store.User) tea.Cmd {
	return func() tea.Msg {
		// Best effort: a failed pointer write only loses auto-login on
		// the next start, not this session.
		_ = s.session.SetCurrentUser(context.Background(), user.ID)
		newLogin := func() screen.Screen {
			return New(s.users, s.session, s.tutor)
		}
		return router.ReplaceScreenMsg{
			Screen: home.New(user, s.users, s.session, s.tutor, newLogin),
		}
	}
}

func (s *LoginScreen) View(width, height int) string {
	title := theme.Title.Render("Willkommen bei LernKraft")
	subtitle := theme.Subtitle.Render("Deine Lernplattform für Mathe, Deutsch und Englisch")

	prompt := "Benutzername:"
	if s.mode == modeRegisterName {
		prompt = "Dein Name:"
	}

	var body string
	body += title + "\n\n"
	body += subtitle + "\n\n\n"
	if s.infoMsg != "" {
		body += theme.Hint.Render(s.infoMsg) + "\n\n"
	}
	body += theme.Body.Render(prompt) + "\n"
	body += s.input.View() + "\n"
	if s.errMsg != "" {
		body += "\n" + theme.Incorrect.Render(s.errMsg) + "\n"
	}

	card := theme.Card.Width(min(width-8, 70)).Render(body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
