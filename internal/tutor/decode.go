package tutor

import "encoding/json"

// exerciseOutput is the raw oracle response before validation.
type exerciseOutput struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correctAnswer"`
	Hint          string `json:"hint"`
}

// decodeExercise parses a structured oracle response. The second return
// value makes the degrade path an explicit branch: false means the
// content is unusable and the caller must substitute the fallback.
// An empty question also counts as unusable; the invariant that every
// presented exercise has a non-empty question holds even for fallbacks.
func decodeExercise(raw json.RawMessage) (Exercise, bool) {
	var out exerciseOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return Exercise{}, false
	}
	if out.Question == "" {
		return Exercise{}, false
	}
	return Exercise{
		Question:      out.Question,
		CorrectAnswer: out.CorrectAnswer,
		Hint:          out.Hint,
	}, true
}
