// Package chat implements the conversation screen with an AI tutor
// channel and a (simulated) teacher channel.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	chatsess "github.com/lernkraft/lernkraft/internal/chat"
	"github.com/lernkraft/lernkraft/internal/screen"
	"github.com/lernkraft/lernkraft/internal/store"
	"github.com/lernkraft/lernkraft/internal/tutor"
	"github.com/lernkraft/lernkraft/internal/ui/components"
	"github.com/lernkraft/lernkraft/internal/ui/layout"
	"github.com/lernkraft/lernkraft/internal/ui/theme"
)

const (
	spinnerInterval = 250 * time.Millisecond

	// teacherReplyDelay models human latency; the reply itself is
	// canned, no one is actually contacted.
	teacherReplyDelay = time.Second
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ChatScreen implements screen.Screen for the conversation view.
type ChatScreen struct {
	tutor   *tutor.Service
	session *chatsess.Session
	userID  string

	input        components.TextInput
	spinnerFrame int
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates the chat screen for the given user, opened on the AI
// channel.
func New(user *store.User, tut *tutor.Service) *ChatScreen {
	return &ChatScreen{
		tutor:   tut,
		session: chatsess.NewSession(user.ID, user.FullName),
		userID:  user.ID,
		input:   components.NewTextInput("Nachricht schreiben...", 500),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return "Chat"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Senden"},
		{Key: "Tab", Description: "Kanal wechseln"},
		{Key: "Esc", Description: "Zurück"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case aiReplyMsg:
		s.session.ResolveAI(msg.Epoch, msg.Content)
		return s, nil

	case teacherReplyMsg:
		s.session.ResolveTeacher(msg.Epoch)
		return s, nil

	case spinnerTickMsg:
		if !s.session.Pending() {
			return s, nil
		}
		s.spinnerFrame = (s.spinnerFrame + 1) % len(spinnerFrames)
		return s, s.spinnerTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "tab":
			s.switchChannel()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) switchChannel() {
	if s.session.Channel() == chatsess.ChannelAI {
		s.session.Switch(chatsess.ChannelTeacher)
	} else {
		s.session.Switch(chatsess.ChannelAI)
	}
}

// send appends the message and starts the reply. The session gates
// empty messages and overlapping sends; a refused send produces no
// command.
func (s *ChatScreen) send() tea.Cmd {
	content := s.input.Value()
	if !s.session.Send(content) {
		return nil
	}
	s.input.Reset()
	epoch := s.session.Epoch()

	if s.session.Channel() == chatsess.ChannelTeacher {
		delay := tea.Tick(teacherReplyDelay, func(time.Time) tea.Msg {
			return teacherReplyMsg{Epoch: epoch}
		})
		return tea.Batch(delay, s.spinnerTick())
	}

	history := s.session.History()
	call := func() tea.Msg {
		reply := s.tutor.ChatTurn(context.Background(), history)
		return aiReplyMsg{Epoch: epoch, Content: reply}
	}
	return tea.Batch(call, s.spinnerTick())
}

func (s *ChatScreen) spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *ChatScreen) View(width, height int) string {
	tabs := components.Tabs{
		Labels: []string{"KI-Tutor", "Lehrer"},
		Active: s.tabIndex(),
	}

	bubbleWidth := min(width-12, 70)

	// Render newest-last and keep only what fits above the input row.
	rendered := make([]string, 0, len(s.session.Turns()))
	for _, turn := range s.session.Turns() {
		label := theme.Hint.Render(turn.SenderName)
		style := theme.LearnerBubble
		if turn.SenderID != s.userID {
			style = theme.TutorBubble
		}
		bubble := style.Width(bubbleWidth).Render(turn.Content)
		rendered = append(rendered, label+"\n"+bubble)
	}

	var body string
	body += tabs.View() + "\n\n"

	logHeight := height - 8
	if logHeight < 3 {
		logHeight = 3
	}
	body += clampLines(rendered, logHeight) + "\n"

	if s.session.Pending() {
		body += theme.Hint.Render(fmt.Sprintf("%s antwortet...", spinnerFrames[s.spinnerFrame])) + "\n"
	}
	body += s.input.View()

	return lipgloss.NewStyle().Padding(1, 4).Width(width).Render(body)
}

func (s *ChatScreen) tabIndex() int {
	if s.session.Channel() == chatsess.ChannelTeacher {
		return 1
	}
	return 0
}

// clampLines joins the rendered turns and keeps only the trailing lines
// that fit, so the newest messages stay visible.
func clampLines(blocks []string, maxLines int) string {
	joined := strings.Join(blocks, "\n")
	lines := strings.Split(joined, "\n")
	if len(lines) <= maxLines {
		return joined
	}
	return strings.Join(lines[len(lines)-maxLines:], "\n")
}
