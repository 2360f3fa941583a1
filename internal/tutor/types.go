package tutor

// Subject is one of the fixed school subjects the platform tutors.
type Subject string

const (
	SubjectMath    Subject = "Mathe"
	SubjectGerman  Subject = "Deutsch"
	SubjectEnglish Subject = "Englisch"
)

// AllSubjects returns the subjects in display order.
func AllSubjects() []Subject {
	return []Subject{SubjectMath, SubjectGerman, SubjectEnglish}
}

// Exercise is one generated practice exercise.
//
// A fallback Exercise (oracle unavailable or unusable response) is shaped
// exactly like a successful one: the Question carries an explanatory
// message and CorrectAnswer/Hint are empty. Callers distinguish it by
// content only, never through an error channel.
type Exercise struct {
	Question      string
	CorrectAnswer string
	Hint          string
}

// ChatMessage is one prior conversation turn as the gateway consumes it.
// FromTutor marks AI-authored turns; everything else maps to the learner
// role. The caller owns the conversational memory and passes the full
// history on every call.
type ChatMessage struct {
	FromTutor bool
	Content   string
}
