// Package exercise holds the practice-session state machine. It is pure
// state: the TUI layer owns the oracle calls and feeds results back in,
// so every transition here is synchronous and unit-testable without a
// provider.
package exercise

import "github.com/lernkraft/lernkraft/internal/tutor"

// State is the session phase. Transitions only move forward through a
// round (Idle -> Generating -> Presented -> Checking -> Done) or reset
// back to Idle.
type State int

const (
	// StateIdle: no exercise on screen; topic input is active.
	StateIdle State = iota
	// StateGenerating: an exercise request is in flight.
	StateGenerating
	// StatePresented: an exercise is on screen awaiting an answer.
	StatePresented
	// StateChecking: an answer-check request is in flight.
	StateChecking
	// StateDone: feedback is on screen; only Next or a reset leave it.
	StateDone
)

// Session is one learner's practice round. The zero value is not valid;
// use New.
type Session struct {
	state   State
	subject tutor.Subject
	topic   string

	exercise     tutor.Exercise
	hintRevealed bool

	answer   string
	feedback string

	// epoch increments on every reset and every request start. A
	// resolution carrying a stale epoch is dropped, so a late oracle
	// reply can never mutate a round it does not belong to.
	epoch int
}

// New returns a session in StateIdle for the given subject.
func New(subject tutor.Subject) *Session {
	return &Session{state: StateIdle, subject: subject}
}

func (s *Session) State() State             { return s.state }
func (s *Session) Subject() tutor.Subject   { return s.subject }
func (s *Session) Topic() string            { return s.topic }
func (s *Session) Exercise() tutor.Exercise { return s.exercise }
func (s *Session) HintRevealed() bool       { return s.hintRevealed }
func (s *Session) Answer() string           { return s.answer }
func (s *Session) Feedback() string         { return s.feedback }

// Epoch identifies the current round for in-flight requests. The caller
// captures it when starting an oracle call and passes it back to the
// matching Resolve method.
func (s *Session) Epoch() int { return s.epoch }

// SelectSubject switches the subject and resets the session to Idle.
// Any in-flight request is orphaned by the epoch bump.
func (s *Session) SelectSubject(subject tutor.Subject) {
	s.subject = subject
	s.reset()
}

// Reset returns to Idle, clearing exercise, answer and feedback.
func (s *Session) Reset() {
	s.reset()
}

func (s *Session) reset() {
	s.state = StateIdle
	s.topic = ""
	s.exercise = tutor.Exercise{}
	s.hintRevealed = false
	s.answer = ""
	s.feedback = ""
	s.epoch++
}

// Generate starts a generation round for the given topic. It returns
// true when the caller should issue the oracle call. An empty topic or
// an already in-flight request is refused; both leave the session
// unchanged.
func (s *Session) Generate(topic string) bool {
	if topic == "" {
		return false
	}
	if s.state == StateGenerating || s.state == StateChecking {
		return false
	}
	s.state = StateGenerating
	s.topic = topic
	s.exercise = tutor.Exercise{}
	s.hintRevealed = false
	s.answer = ""
	s.feedback = ""
	s.epoch++
	return true
}

// ResolveExercise delivers a generated exercise. Resolutions from a
// stale epoch are dropped.
func (s *Session) ResolveExercise(epoch int, ex tutor.Exercise) {
	if epoch != s.epoch || s.state != StateGenerating {
		return
	}
	s.exercise = ex
	s.state = StatePresented
}

// RevealHint marks the hint as shown. Idempotent; a no-op unless an
// exercise with a hint is presented.
func (s *Session) RevealHint() {
	if s.state != StatePresented && s.state != StateChecking && s.state != StateDone {
		return
	}
	if s.exercise.Hint == "" {
		return
	}
	s.hintRevealed = true
}

// Submit starts the answer check. It returns true when the caller
// should issue the oracle call. Empty answers and wrong states are
// refused.
func (s *Session) Submit(answer string) bool {
	if s.state != StatePresented {
		return false
	}
	if answer == "" {
		return false
	}
	s.state = StateChecking
	s.answer = answer
	s.epoch++
	return true
}

// ResolveFeedback delivers the check result and completes the round.
// Feedback is set exactly once per round: stale epochs and wrong states
// are dropped, and StateDone accepts no further resolutions.
func (s *Session) ResolveFeedback(epoch int, feedback string) {
	if epoch != s.epoch || s.state != StateChecking {
		return
	}
	s.feedback = feedback
	s.state = StateDone
}

// Next clears the finished round and returns to Idle, keeping the
// subject. Only valid from StateDone.
func (s *Session) Next() {
	if s.state != StateDone {
		return
	}
	s.reset()
}
