package gateway

import (
	"fmt"
	"strings"

	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

const tutorFallback = "I couldn't generate a response. Please try again."

const explainFallback = "Could not explain this concept right now."

func quizPrompt(subject, topic string, grade syllabus.Grade) string {
	return fmt.Sprintf(`Generate a quiz with %d multiple-choice questions for Grade %d %s on the topic of %q.
The questions should be challenging but appropriate for the grade level.
Give four options per question and exactly one correct answer.`, QuizSize, int(grade), subject, topic)
}

func notesPrompt(subject, topic string, grade syllabus.Grade) string {
	return fmt.Sprintf(`Write concise study notes for Grade %d %s on the topic of %q, following the Examination Council of Zambia (ECZ) syllabus.
Use markdown with short headings, bullet points and one worked example where it helps.
Keep it readable on a small screen.`, int(grade), subject, topic)
}

func flashcardPrompt(subject, topic string, grade syllabus.Grade) string {
	return fmt.Sprintf(`Create %d revision flashcards for Grade %d %s on the topic of %q.
Each card has a short front (a term, date or question) and a clear back (the definition or answer).`, DeckSize, int(grade), subject, topic)
}

func explainPrompt(concept string, grade syllabus.Grade) string {
	return fmt.Sprintf("Explain the concept of %q to a Grade %d student in Zambia. Use simple analogies.", concept, int(grade))
}

// tutorSystem builds the tutor instruction. The topic list is the only
// syllabus constraint the client can give; the provider enforces it.
func tutorSystem(grade syllabus.Grade, subject string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a friendly and knowledgeable tutor for a Zambian student in Grade %d.\n", int(grade))
	if subject != "" {
		fmt.Fprintf(&b, "The current subject is %s.\n", subject)
	}
	b.WriteString("Your goal is to help them understand concepts clearly, following the Examination Council of Zambia (ECZ) standards where applicable.\n")
	b.WriteString("Keep explanations concise, encouraging, and easy to understand on a mobile screen.\n")
	b.WriteString("If asked about non-educational topics, politely steer the conversation back to learning.\n")

	topics := syllabus.TopicsForGrade(grade)
	if len(topics) > 0 {
		fmt.Fprintf(&b, "\nTopics in the Grade %d syllabus:\n", int(grade))
		for _, gt := range topics {
			fmt.Fprintf(&b, "- %s: %s\n", gt.Subject, strings.Join(gt.Topics, ", "))
		}
		b.WriteString("If a question falls outside these topics, say so briefly and suggest a related syllabus topic instead of answering it.")
	}

	return b.String()
}
