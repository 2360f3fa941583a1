package learning

import (
	"time"

	"github.com/lernkraft/lernkraft/internal/tutor"
)

// exerciseReadyMsg is sent when exercise generation resolves. Epoch ties
// the result to the round that requested it; stale results are dropped
// by the session.
type exerciseReadyMsg struct {
	Epoch    int
	Exercise tutor.Exercise
}

// feedbackReadyMsg is sent when the answer check resolves.
type feedbackReadyMsg struct {
	Epoch    int
	Feedback string
}

// spinnerTickMsg animates the waiting indicator.
type spinnerTickMsg time.Time
