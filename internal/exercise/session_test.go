package exercise

import (
	"testing"

	"github.com/lernkraft/lernkraft/internal/tutor"
)

func sampleExercise() tutor.Exercise {
	return tutor.Exercise{
		Question:      "Löse: 3x + 4 = 13",
		CorrectAnswer: "x = 3",
		Hint:          "Erst die 4 subtrahieren.",
	}
}

func TestFullRound(t *testing.T) {
	s := New(tutor.SubjectMath)

	if s.State() != StateIdle {
		t.Fatalf("initial state = %v", s.State())
	}

	if !s.Generate("Gleichungen") {
		t.Fatal("Generate refused")
	}
	if s.State() != StateGenerating {
		t.Fatalf("state = %v, want Generating", s.State())
	}

	s.ResolveExercise(s.Epoch(), sampleExercise())
	if s.State() != StatePresented {
		t.Fatalf("state = %v, want Presented", s.State())
	}
	if s.Exercise().Question == "" {
		t.Error("exercise not stored")
	}

	if !s.Submit("x = 3") {
		t.Fatal("Submit refused")
	}
	if s.State() != StateChecking {
		t.Fatalf("state = %v, want Checking", s.State())
	}

	s.ResolveFeedback(s.Epoch(), "Richtig!")
	if s.State() != StateDone {
		t.Fatalf("state = %v, want Done", s.State())
	}
	if s.Feedback() != "Richtig!" {
		t.Errorf("feedback = %q", s.Feedback())
	}

	s.Next()
	if s.State() != StateIdle {
		t.Fatalf("state after Next = %v, want Idle", s.State())
	}
	if s.Topic() != "" || s.Answer() != "" || s.Feedback() != "" {
		t.Error("Next must clear the round")
	}
}

func TestGenerate_EmptyTopic(t *testing.T) {
	s := New(tutor.SubjectMath)

	if s.Generate("") {
		t.Error("Generate must refuse an empty topic")
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want Idle", s.State())
	}
}

func TestGenerate_WhileInFlight(t *testing.T) {
	s := New(tutor.SubjectMath)
	s.Generate("Brüche")
	epoch := s.Epoch()

	if s.Generate("Prozente") {
		t.Error("Generate must refuse while a request is in flight")
	}
	if s.Topic() != "Brüche" {
		t.Errorf("topic = %q, refused call must not mutate", s.Topic())
	}
	if s.Epoch() != epoch {
		t.Error("refused call must not bump the epoch")
	}
}

func TestResolveExercise_StaleEpoch(t *testing.T) {
	s := New(tutor.SubjectMath)
	s.Generate("Brüche")
	stale := s.Epoch()

	// Subject switch resets the session and orphans the request.
	s.SelectSubject(tutor.SubjectGerman)
	s.ResolveExercise(stale, sampleExercise())

	if s.State() != StateIdle {
		t.Errorf("state = %v, stale resolution must be dropped", s.State())
	}
	if s.Exercise().Question != "" {
		t.Error("stale exercise must not be stored")
	}
}

func TestResolveExercise_AfterRegenerate(t *testing.T) {
	s := New(tutor.SubjectMath)
	s.Generate("Brüche")
	first := s.Epoch()

	// Reset and start over: the first reply arrives late.
	s.Reset()
	s.Generate("Prozente")
	second := s.Epoch()

	s.ResolveExercise(first, tutor.Exercise{Question: "alte Aufgabe"})
	if s.State() != StateGenerating {
		t.Errorf("state = %v, stale resolution must be dropped", s.State())
	}

	s.ResolveExercise(second, sampleExercise())
	if s.State() != StatePresented {
		t.Errorf("state = %v, current resolution must land", s.State())
	}
	if s.Exercise().Question != sampleExercise().Question {
		t.Errorf("exercise = %q", s.Exercise().Question)
	}
}

func TestRevealHint(t *testing.T) {
	s := New(tutor.SubjectMath)

	// No-op before an exercise is presented.
	s.RevealHint()
	if s.HintRevealed() {
		t.Error("hint revealed in Idle")
	}

	s.Generate("Gleichungen")
	s.ResolveExercise(s.Epoch(), sampleExercise())

	s.RevealHint()
	if !s.HintRevealed() {
		t.Error("hint not revealed")
	}

	// Idempotent.
	s.RevealHint()
	if !s.HintRevealed() {
		t.Error("hint flag lost on repeat")
	}
}

func TestRevealHint_NoHint(t *testing.T) {
	s := New(tutor.SubjectMath)
	s.Generate("Gleichungen")
	s.ResolveExercise(s.Epoch(), tutor.Exercise{Question: "q", CorrectAnswer: "a"})

	s.RevealHint()
	if s.HintRevealed() {
		t.Error("hintless exercise must not mark the hint revealed")
	}
}

func TestSubmit_Guards(t *testing.T) {
	s := New(tutor.SubjectMath)

	if s.Submit("42") {
		t.Error("Submit must refuse without a presented exercise")
	}

	s.Generate("Gleichungen")
	s.ResolveExercise(s.Epoch(), sampleExercise())

	if s.Submit("") {
		t.Error("Submit must refuse an empty answer")
	}
	if s.State() != StatePresented {
		t.Errorf("state = %v, refused Submit must not transition", s.State())
	}
}

func TestResolveFeedback_SetOnce(t *testing.T) {
	s := New(tutor.SubjectMath)
	s.Generate("Gleichungen")
	s.ResolveExercise(s.Epoch(), sampleExercise())
	s.Submit("x = 3")
	epoch := s.Epoch()

	s.ResolveFeedback(epoch, "Richtig!")
	s.ResolveFeedback(epoch, "doch falsch")

	if s.Feedback() != "Richtig!" {
		t.Errorf("feedback = %q, must be set exactly once", s.Feedback())
	}
}

func TestNext_OnlyFromDone(t *testing.T) {
	s := New(tutor.SubjectMath)
	s.Generate("Gleichungen")
	s.ResolveExercise(s.Epoch(), sampleExercise())

	s.Next()
	if s.State() != StatePresented {
		t.Errorf("state = %v, Next outside Done must be a no-op", s.State())
	}
}

func TestSelectSubject_Resets(t *testing.T) {
	s := New(tutor.SubjectMath)
	s.Generate("Gleichungen")
	s.ResolveExercise(s.Epoch(), sampleExercise())
	s.Submit("x = 3")
	s.ResolveFeedback(s.Epoch(), "Richtig!")

	s.SelectSubject(tutor.SubjectEnglish)

	if s.Subject() != tutor.SubjectEnglish {
		t.Errorf("subject = %q", s.Subject())
	}
	if s.State() != StateIdle {
		t.Errorf("state = %v, want Idle", s.State())
	}
	if s.Feedback() != "" || s.Answer() != "" {
		t.Error("subject switch must clear the round")
	}
}
