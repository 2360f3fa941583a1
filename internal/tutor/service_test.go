package tutor

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lernkraft/lernkraft/internal/llm"
)

func TestGenerateExercise_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"question":"2/3 + 1/6 = ?","correctAnswer":"5/6","hint":"Gleichnamig machen"}`),
	})
	svc := NewService(mock, DefaultConfig())

	ex := svc.GenerateExercise(context.Background(), SubjectMath, "Bruchrechnung")

	if ex.Question != "2/3 + 1/6 = ?" {
		t.Errorf("question = %q", ex.Question)
	}
	if ex.CorrectAnswer != "5/6" {
		t.Errorf("correctAnswer = %q", ex.CorrectAnswer)
	}
	if ex.Hint != "Gleichnamig machen" {
		t.Errorf("hint = %q", ex.Hint)
	}

	// The request must carry the structured-output schema and the topic.
	if len(mock.Calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(mock.Calls))
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "practice-exercise" {
		t.Error("expected exercise schema on request")
	}
	if !strings.Contains(req.Messages[0].Content, "Bruchrechnung") {
		t.Error("expected topic in prompt")
	}
	if !strings.Contains(req.Messages[0].Content, string(SubjectMath)) {
		t.Error("expected subject in prompt")
	}
}

func TestGenerateExercise_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	svc := NewService(mock, DefaultConfig())

	ex := svc.GenerateExercise(context.Background(), SubjectMath, "Bruchrechnung")

	if ex.Question != fallbackExerciseQuestion {
		t.Errorf("question = %q, want fallback", ex.Question)
	}
	if ex.CorrectAnswer != "" || ex.Hint != "" {
		t.Error("fallback must have empty answer and hint")
	}
}

func TestGenerateExercise_MalformedJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`Hier ist deine Aufgabe: 2+2`),
	})
	svc := NewService(mock, DefaultConfig())

	ex := svc.GenerateExercise(context.Background(), SubjectGerman, "Gedichtanalyse")

	if ex.Question != fallbackExerciseQuestion {
		t.Errorf("question = %q, want fallback on parse failure", ex.Question)
	}
}

func TestGenerateExercise_NoProvider(t *testing.T) {
	svc := NewService(nil, DefaultConfig())

	ex := svc.GenerateExercise(context.Background(), SubjectEnglish, "Simple Past")

	if ex.Question != fallbackNoProviderText {
		t.Errorf("question = %q, want missing-key fallback", ex.Question)
	}
	if ex.CorrectAnswer != "" {
		t.Error("fallback must have empty answer")
	}
}

func TestCheckAnswer_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`Richtig! 5/6 ist die korrekte Lösung.`),
	})
	svc := NewService(mock, DefaultConfig())

	fb := svc.CheckAnswer(context.Background(), "2/3 + 1/6 = ?", "5/6", "5/6")

	if !strings.Contains(fb, "Richtig") {
		t.Errorf("feedback = %q", fb)
	}

	req := mock.Calls[0]
	if req.Schema != nil {
		t.Error("answer check must not request structured output")
	}
	for _, part := range []string{"2/3 + 1/6 = ?", "5/6"} {
		if !strings.Contains(req.Messages[0].Content, part) {
			t.Errorf("prompt missing %q", part)
		}
	}
}

func TestCheckAnswer_Failure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	svc := NewService(mock, DefaultConfig())

	fb := svc.CheckAnswer(context.Background(), "q", "a", "c")

	if fb != fallbackFeedbackText {
		t.Errorf("feedback = %q, want fallback", fb)
	}
}

func TestChatTurn_HistoryMapping(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`Hallo! Wobei kann ich dir helfen?`),
	})
	svc := NewService(mock, DefaultConfig())

	// First send: history is exactly the one learner message.
	reply := svc.ChatTurn(context.Background(), []ChatMessage{
		{FromTutor: false, Content: "Hi"},
	})
	if reply == "" {
		t.Fatal("expected reply text")
	}

	req := mock.Calls[0]
	if req.System == "" {
		t.Error("expected persona system instruction")
	}
	if len(req.Messages) != 1 {
		t.Fatalf("history length = %d, want 1", len(req.Messages))
	}
	if req.Messages[0].Role != llm.RoleUser || req.Messages[0].Content != "Hi" {
		t.Errorf("message = %+v, want user Hi", req.Messages[0])
	}
}

func TestChatTurn_RoleTagging(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`Gerne!`),
	})
	svc := NewService(mock, DefaultConfig())

	svc.ChatTurn(context.Background(), []ChatMessage{
		{FromTutor: true, Content: "Hallo! Ich bin dein KI-Tutor."},
		{FromTutor: false, Content: "Erklär mir Brüche."},
	})

	req := mock.Calls[0]
	if req.Messages[0].Role != llm.RoleAssistant {
		t.Errorf("tutor turn role = %q, want assistant", req.Messages[0].Role)
	}
	if req.Messages[1].Role != llm.RoleUser {
		t.Errorf("learner turn role = %q, want user", req.Messages[1].Role)
	}
}

func TestChatTurn_Failure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	svc := NewService(mock, DefaultConfig())

	reply := svc.ChatTurn(context.Background(), []ChatMessage{{Content: "Hi"}})

	if reply != fallbackChatText {
		t.Errorf("reply = %q, want fallback", reply)
	}
}
