package tutor

import "strings"

// FeedbackTone is a display hint derived from feedback text.
type FeedbackTone int

const (
	ToneNegative FeedbackTone = iota
	TonePositive
)

// positiveWords is the word list for sentiment routing. German feedback
// from the oracle tends to contain one of these when the answer was at
// least partially right.
var positiveWords = []string{
	"richtig",
	"gut",
	"korrekt",
	"super",
	"prima",
}

// ClassifyFeedback guesses whether feedback text is positive by keyword
// substring matching. This is best-effort sentiment routing for styling
// only: the oracle makes no contract about its wording, so the result
// must never gate a state transition or be treated as a correctness
// signal.
func ClassifyFeedback(feedback string) FeedbackTone {
	lower := strings.ToLower(feedback)
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			return TonePositive
		}
	}
	return ToneNegative
}
