// Package chat holds the conversation-session state machine. Like the
// practice session it is pure state: the TUI layer runs the oracle call
// (or the delayed canned teacher reply) and resolves it back in.
package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/lernkraft/lernkraft/internal/tutor"
)

// Channel selects the conversation partner.
type Channel string

const (
	// ChannelAI talks to the generative tutor.
	ChannelAI Channel = "ai"
	// ChannelTeacher talks to the human teacher; replies are canned.
	ChannelTeacher Channel = "teacher"
)

// Turn is one message in a channel's log.
type Turn struct {
	ID         string
	SenderID   string
	SenderName string
	Content    string
	Timestamp  time.Time
	IsAI       bool
}

const (
	aiSenderID   = "ai-tutor"
	aiSenderName = "KI-Tutor"

	teacherSenderID   = "teacher-1"
	teacherSenderName = "Herr Müller"

	aiGreeting = "Hallo! Ich bin dein persönlicher KI-Tutor. Wie kann ich dir heute helfen? Du kannst mich alles über Mathe, Deutsch oder Englisch fragen!"

	teacherReply = "Danke für deine Nachricht! Ich schaue mir das später an und melde mich bei dir."
)

// Session is one learner's conversation state. Each channel holds an
// append-only turn log for its lifetime; channels do not share history,
// and switching into a channel starts it fresh.
type Session struct {
	userID   string
	userName string

	channel Channel
	logs    map[Channel][]Turn
	pending bool

	// epoch increments on every channel switch. A reply resolution
	// carrying a stale epoch is dropped so a late AI answer cannot leak
	// into the teacher channel (or vice versa).
	epoch int

	now func() time.Time
}

// NewSession creates a session for the given learner, opened on the AI
// channel with the tutor's greeting already in the log.
func NewSession(userID, userName string) *Session {
	s := &Session{
		userID:   userID,
		userName: userName,
		logs:     make(map[Channel][]Turn),
		now:      time.Now,
	}
	s.openChannel(ChannelAI)
	return s
}

func (s *Session) Channel() Channel { return s.channel }
func (s *Session) Pending() bool    { return s.pending }

// Epoch identifies the current channel view for in-flight replies.
func (s *Session) Epoch() int { return s.epoch }

// Turns returns the current channel's log, oldest first. The returned
// slice is shared; callers must not mutate it.
func (s *Session) Turns() []Turn {
	return s.logs[s.channel]
}

// Switch changes the active channel. A no-op when the channel is
// already active. The target channel's turns are cleared (returning to
// a channel does not restore its old history), any in-flight reply is
// orphaned by the epoch bump, and the pending gate reopens so the
// learner can type immediately.
func (s *Session) Switch(ch Channel) {
	if ch == s.channel {
		return
	}
	s.openChannel(ch)
}

func (s *Session) openChannel(ch Channel) {
	s.channel = ch
	s.logs[ch] = nil
	s.pending = false
	s.epoch++

	// The AI channel always opens with the greeting, synthesized
	// locally without an oracle call.
	if ch == ChannelAI {
		s.logs[ChannelAI] = append(s.logs[ChannelAI], Turn{
			ID:         uuid.NewString(),
			SenderID:   aiSenderID,
			SenderName: aiSenderName,
			Content:    aiGreeting,
			Timestamp:  s.now(),
			IsAI:       true,
		})
	}
}

// Send appends the learner's message to the active channel and closes
// the pending gate. It returns true when the caller should start the
// reply (an oracle call on the AI channel, a delayed canned reply on
// the teacher channel). Empty messages and sends while a reply is
// pending are refused.
func (s *Session) Send(content string) bool {
	if content == "" || s.pending {
		return false
	}
	s.logs[s.channel] = append(s.logs[s.channel], Turn{
		ID:         uuid.NewString(),
		SenderID:   s.userID,
		SenderName: s.userName,
		Content:    content,
		Timestamp:  s.now(),
	})
	s.pending = true
	return true
}

// History maps the AI channel's log into gateway messages, including
// the greeting and the just-sent message. The gateway holds no state,
// so the full log travels on every call.
func (s *Session) History() []tutor.ChatMessage {
	log := s.logs[ChannelAI]
	out := make([]tutor.ChatMessage, len(log))
	for i, turn := range log {
		out[i] = tutor.ChatMessage{FromTutor: turn.IsAI, Content: turn.Content}
	}
	return out
}

// ResolveAI appends the tutor's reply and reopens the pending gate.
// Stale epochs are dropped.
func (s *Session) ResolveAI(epoch int, content string) {
	s.resolve(epoch, ChannelAI, Turn{
		SenderID:   aiSenderID,
		SenderName: aiSenderName,
		Content:    content,
		IsAI:       true,
	})
}

// ResolveTeacher appends the canned teacher reply. Stale epochs are
// dropped.
func (s *Session) ResolveTeacher(epoch int) {
	s.resolve(epoch, ChannelTeacher, Turn{
		SenderID:   teacherSenderID,
		SenderName: teacherSenderName,
		Content:    teacherReply,
	})
}

func (s *Session) resolve(epoch int, ch Channel, turn Turn) {
	if epoch != s.epoch || s.channel != ch || !s.pending {
		return
	}
	turn.ID = uuid.NewString()
	turn.Timestamp = s.now()
	s.logs[ch] = append(s.logs[ch], turn)
	s.pending = false
}
