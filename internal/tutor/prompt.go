package tutor

import (
	"fmt"
	"strings"
)

// chatSystemPrompt is the tutor persona. It is attached once per request
// as the system instruction, never repeated inside the turn history.
const chatSystemPrompt = "Du bist ein freundlicher, geduldiger und motivierender Nachhilfelehrer " +
	"für Mathe, Deutsch und Englisch. Du hilfst Schülern bei ihren Hausaufgaben " +
	"und erklärst Konzepte einfach. Du sprichst Deutsch."

func buildExercisePrompt(subject Subject, topic string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Erstelle eine kurze, einzelne Übungsaufgabe für das Fach %s zum Thema %q.\n", subject, topic))
	b.WriteString("Das Niveau sollte für einen Schüler der 7.-10. Klasse angemessen sein.\n")
	b.WriteString("Gib nur die Aufgabe zurück und in einem separaten Feld die Lösung.")
	return b.String()
}

func buildCheckPrompt(question, userAnswer, correctAnswer string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Aufgabe: %s\n", question))
	b.WriteString(fmt.Sprintf("Korrekte Lösung (intern): %s\n", correctAnswer))
	b.WriteString(fmt.Sprintf("Antwort des Schülers: %s\n\n", userAnswer))
	b.WriteString("Bewerte die Antwort des Schülers. Ist sie richtig, teilweise richtig oder falsch?\n")
	b.WriteString("Gib konstruktives, freundliches Feedback auf Deutsch (max 2 Sätze).")
	return b.String()
}
