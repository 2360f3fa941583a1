// Package learning implements the practice screen: pick a subject,
// name a topic, get a generated exercise, answer it, read the feedback.
package learning

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lernkraft/lernkraft/internal/exercise"
	"github.com/lernkraft/lernkraft/internal/screen"
	"github.com/lernkraft/lernkraft/internal/tutor"
	"github.com/lernkraft/lernkraft/internal/ui/components"
	"github.com/lernkraft/lernkraft/internal/ui/layout"
	"github.com/lernkraft/lernkraft/internal/ui/theme"
)

const spinnerInterval = 250 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// LearningScreen implements screen.Screen for practice rounds.
type LearningScreen struct {
	tutor   *tutor.Service
	session *exercise.Session

	pickingSubject bool
	subjectMenu    components.Menu

	topicInput  components.TextInput
	answerInput components.TextInput

	spinnerFrame int
}

var _ screen.Screen = (*LearningScreen)(nil)
var _ screen.KeyHintProvider = (*LearningScreen)(nil)

// New creates the learning screen, starting at subject selection.
func New(tut *tutor.Service) *LearningScreen {
	s := &LearningScreen{
		tutor:          tut,
		session:        exercise.New(tutor.SubjectMath),
		pickingSubject: true,
		topicInput:     components.NewTextInput("Thema, z.B. Bruchrechnung...", 60),
		answerInput:    components.NewTextInput("Deine Antwort...", 120),
	}
	s.subjectMenu = s.buildSubjectMenu()
	return s
}

func (s *LearningScreen) buildSubjectMenu() components.Menu {
	items := make([]components.MenuItem, 0, len(tutor.AllSubjects()))
	for _, subject := range tutor.AllSubjects() {
		subject := subject
		items = append(items, components.MenuItem{
			Label: string(subject),
			Action: func() tea.Cmd {
				s.session.SelectSubject(subject)
				s.pickingSubject = false
				s.topicInput.Reset()
				return s.topicInput.Init()
			},
		})
	}
	return components.NewMenu(items)
}

func (s *LearningScreen) Init() tea.Cmd {
	return nil
}

func (s *LearningScreen) Title() string {
	return "Lernbereich"
}

func (s *LearningScreen) KeyHints() []layout.KeyHint {
	if s.pickingSubject {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Fach wählen"},
			{Key: "Enter", Description: "Auswählen"},
			{Key: "Esc", Description: "Zurück"},
		}
	}
	switch s.session.State() {
	case exercise.StateIdle:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Aufgabe generieren"},
			{Key: "Tab", Description: "Fach wechseln"},
			{Key: "Esc", Description: "Zurück"},
		}
	case exercise.StatePresented:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Antwort prüfen"},
		}
		if s.session.Exercise().Hint != "" && !s.session.HintRevealed() {
			hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Tipp anzeigen"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Zurück"})
	case exercise.StateDone:
		return []layout.KeyHint{
			{Key: "N", Description: "Nächste Aufgabe"},
			{Key: "Tab", Description: "Fach wechseln"},
			{Key: "Esc", Description: "Zurück"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Zurück"},
		}
	}
}

func (s *LearningScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exerciseReadyMsg:
		s.session.ResolveExercise(msg.Epoch, msg.Exercise)
		if s.session.State() == exercise.StatePresented {
			s.answerInput.Reset()
			return s, s.answerInput.Init()
		}
		return s, nil

	case feedbackReadyMsg:
		s.session.ResolveFeedback(msg.Epoch, msg.Feedback)
		return s, nil

	case spinnerTickMsg:
		if !s.waiting() {
			return s, nil
		}
		s.spinnerFrame = (s.spinnerFrame + 1) % len(spinnerFrames)
		return s, s.spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToInput(msg)
}

func (s *LearningScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.pickingSubject {
		var cmd tea.Cmd
		s.subjectMenu, cmd = s.subjectMenu.Update(msg)
		return s, cmd
	}

	switch s.session.State() {
	case exercise.StateIdle:
		switch msg.String() {
		case "enter":
			return s, s.generate()
		case "tab":
			s.pickingSubject = true
			return s, nil
		}

	case exercise.StatePresented:
		switch msg.String() {
		case "enter":
			return s, s.submit()
		case "tab":
			s.session.RevealHint()
			return s, nil
		}

	case exercise.StateDone:
		switch msg.String() {
		case "n", "enter":
			s.session.Next()
			s.topicInput.Reset()
			return s, s.topicInput.Init()
		case "tab":
			s.pickingSubject = true
			return s, nil
		}
	}

	return s.forwardToInput(msg)
}

func (s *LearningScreen) forwardToInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.session.State() {
	case exercise.StateIdle:
		s.topicInput, cmd = s.topicInput.Update(msg)
	case exercise.StatePresented:
		s.answerInput, cmd = s.answerInput.Update(msg)
	}
	return s, cmd
}

// generate starts a round. The session decides whether the request is
// allowed; a refused request produces no command.
func (s *LearningScreen) generate() tea.Cmd {
	topic := s.topicInput.Value()
	if !s.session.Generate(topic) {
		return nil
	}
	epoch := s.session.Epoch()
	subject := s.session.Subject()

	call := func() tea.Msg {
		ex := s.tutor.GenerateExercise(context.Background(), subject, topic)
		return exerciseReadyMsg{Epoch: epoch, Exercise: ex}
	}
	return tea.Batch(call, s.spinnerTick())
}

func (s *LearningScreen) submit() tea.Cmd {
	answer := s.answerInput.Value()
	if !s.session.Submit(answer) {
		return nil
	}
	epoch := s.session.Epoch()
	ex := s.session.Exercise()

	call := func() tea.Msg {
		feedback := s.tutor.CheckAnswer(context.Background(), ex.Question, answer, ex.CorrectAnswer)
		return feedbackReadyMsg{Epoch: epoch, Feedback: feedback}
	}
	return tea.Batch(call, s.spinnerTick())
}

func (s *LearningScreen) spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *LearningScreen) waiting() bool {
	st := s.session.State()
	return st == exercise.StateGenerating || st == exercise.StateChecking
}

func (s *LearningScreen) View(width, height int) string {
	var body string

	if s.pickingSubject {
		body = theme.Title.Render("Welches Fach möchtest du üben?") + "\n\n" + s.subjectMenu.View()
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
	}

	subject := theme.Subtitle.Render(fmt.Sprintf("Fach: %s", s.session.Subject()))

	switch s.session.State() {
	case exercise.StateIdle:
		body = theme.Title.Render("Was möchtest du üben?") + "\n"
		body += subject + "\n\n"
		body += s.topicInput.View()

	case exercise.StateGenerating:
		body = subject + "\n\n"
		body += theme.Body.Render(fmt.Sprintf("%s Aufgabe wird generiert...", spinnerFrames[s.spinnerFrame]))

	case exercise.StatePresented, exercise.StateChecking:
		body = subject + "\n\n"
		body += theme.Card.Width(min(width-8, 80)).Render(s.session.Exercise().Question) + "\n\n"
		if s.session.HintRevealed() {
			body += theme.Hint.Render("Tipp: "+s.session.Exercise().Hint) + "\n\n"
		}
		if s.session.State() == exercise.StateChecking {
			body += theme.Body.Render(fmt.Sprintf("%s Antwort wird geprüft...", spinnerFrames[s.spinnerFrame]))
		} else {
			body += s.answerInput.View()
		}

	case exercise.StateDone:
		body = subject + "\n\n"
		body += theme.Card.Width(min(width-8, 80)).Render(s.session.Exercise().Question) + "\n\n"
		body += theme.Body.Render("Deine Antwort: "+s.session.Answer()) + "\n\n"

		feedback := s.session.Feedback()
		if tutor.ClassifyFeedback(feedback) == tutor.TonePositive {
			body += theme.Correct.Render(feedback)
		} else {
			body += theme.Incorrect.Render(feedback)
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
