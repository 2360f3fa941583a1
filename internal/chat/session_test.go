package chat

import (
	"testing"

	"github.com/lernkraft/lernkraft/internal/tutor"
)

func newTestSession() *Session {
	return NewSession("student-1", "Lisa Lerner")
}

func TestNewSession_Greeting(t *testing.T) {
	s := newTestSession()

	if s.Channel() != ChannelAI {
		t.Fatalf("channel = %q, want ai", s.Channel())
	}
	turns := s.Turns()
	if len(turns) != 1 {
		t.Fatalf("turns = %d, want the greeting only", len(turns))
	}
	if !turns[0].IsAI {
		t.Error("greeting must be AI-authored")
	}
	if turns[0].Content != aiGreeting {
		t.Errorf("greeting = %q", turns[0].Content)
	}
	if turns[0].ID == "" {
		t.Error("greeting needs an id")
	}
}

func TestSend_OptimisticEcho(t *testing.T) {
	s := newTestSession()

	if !s.Send("Hi") {
		t.Fatal("Send refused")
	}
	turns := s.Turns()
	if len(turns) != 2 {
		t.Fatalf("turns = %d, want greeting + echo", len(turns))
	}
	last := turns[len(turns)-1]
	if last.IsAI || last.SenderName != "Lisa Lerner" || last.Content != "Hi" {
		t.Errorf("echoed turn = %+v", last)
	}
	if !s.Pending() {
		t.Error("send must close the pending gate")
	}
}

func TestSend_Guards(t *testing.T) {
	s := newTestSession()

	if s.Send("") {
		t.Error("empty send must be refused")
	}

	s.Send("erste Frage")
	if s.Send("zweite Frage") {
		t.Error("send while pending must be refused")
	}
	if len(s.Turns()) != 2 {
		t.Errorf("turns = %d, refused send must not append", len(s.Turns()))
	}
}

func TestResolveAI(t *testing.T) {
	s := newTestSession()
	s.Send("Hi")
	epoch := s.Epoch()

	s.ResolveAI(epoch, "Hallo Lisa!")

	turns := s.Turns()
	if len(turns) != 3 {
		t.Fatalf("turns = %d", len(turns))
	}
	reply := turns[2]
	if !reply.IsAI || reply.Content != "Hallo Lisa!" {
		t.Errorf("reply = %+v", reply)
	}
	if s.Pending() {
		t.Error("resolution must reopen the pending gate")
	}
}

func TestHistory_IncludesJustSent(t *testing.T) {
	s := newTestSession()
	s.Send("Erklär mir Brüche.")

	hist := s.History()
	if len(hist) != 2 {
		t.Fatalf("history = %d, want greeting + sent message", len(hist))
	}
	if !hist[0].FromTutor {
		t.Error("greeting must map to the tutor role")
	}
	want := tutor.ChatMessage{FromTutor: false, Content: "Erklär mir Brüche."}
	if hist[1] != want {
		t.Errorf("last entry = %+v, want %+v", hist[1], want)
	}
}

func TestSwitch_ClearsHistory(t *testing.T) {
	s := newTestSession()
	for _, msg := range []string{"eins", "zwei", "drei"} {
		s.Send(msg)
		s.ResolveAI(s.Epoch(), "ok")
	}

	s.Switch(ChannelTeacher)
	if len(s.Turns()) != 0 {
		t.Errorf("teacher turns = %d, want empty", len(s.Turns()))
	}

	// Returning to the AI channel does not restore the old log; only
	// the re-synthesized greeting remains.
	s.Switch(ChannelAI)
	turns := s.Turns()
	if len(turns) != 1 {
		t.Fatalf("turns after round trip = %d, want 1", len(turns))
	}
	if turns[0].Content != aiGreeting {
		t.Errorf("turn = %q, want greeting", turns[0].Content)
	}
}

func TestSwitch_SameChannelNoop(t *testing.T) {
	s := newTestSession()
	s.Send("Hi")
	epoch := s.Epoch()

	s.Switch(ChannelAI)

	if len(s.Turns()) != 2 {
		t.Error("same-channel switch must not clear turns")
	}
	if s.Epoch() != epoch {
		t.Error("same-channel switch must not bump the epoch")
	}
}

func TestSwitch_OrphansInFlightReply(t *testing.T) {
	s := newTestSession()
	s.Send("Hi")
	stale := s.Epoch()

	s.Switch(ChannelTeacher)
	s.ResolveAI(stale, "zu spät")

	if len(s.Turns()) != 0 {
		t.Error("stale AI reply must not land in the teacher channel")
	}
	if s.Pending() {
		t.Error("switch must reopen the pending gate")
	}

	s.Switch(ChannelAI)
	for _, turn := range s.Turns() {
		if turn.Content == "zu spät" {
			t.Error("stale AI reply must be dropped entirely")
		}
	}
}

func TestTeacherChannel(t *testing.T) {
	s := newTestSession()
	s.Switch(ChannelTeacher)

	if !s.Send("Wann ist die Klausur?") {
		t.Fatal("Send refused")
	}
	epoch := s.Epoch()

	s.ResolveTeacher(epoch)

	turns := s.Turns()
	if len(turns) != 2 {
		t.Fatalf("turns = %d", len(turns))
	}
	reply := turns[1]
	if reply.IsAI {
		t.Error("teacher reply must not be AI-tagged")
	}
	if reply.SenderName != teacherSenderName || reply.Content != teacherReply {
		t.Errorf("reply = %+v", reply)
	}
	if s.Pending() {
		t.Error("resolution must reopen the pending gate")
	}
}

func TestOrdering_PreservedWithinChannel(t *testing.T) {
	s := newTestSession()
	s.Send("Frage 1")
	s.ResolveAI(s.Epoch(), "Antwort 1")
	s.Send("Frage 2")
	s.ResolveAI(s.Epoch(), "Antwort 2")

	got := make([]string, 0, 5)
	for _, turn := range s.Turns() {
		got = append(got, turn.Content)
	}
	want := []string{aiGreeting, "Frage 1", "Antwort 1", "Frage 2", "Antwort 2"}
	if len(got) != len(want) {
		t.Fatalf("turns = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("turn %d = %q, want %q", i, got[i], want[i])
		}
	}
}
