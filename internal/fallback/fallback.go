// Package fallback synthesizes substitute content when the external
// generator is unavailable.
//
// Generation is pure and deterministic apart from the timestamp: no I/O,
// no network, no failure path. List kinds cycle a small fixed sample set
// to reach the requested count and renumber ids 1..count.
package fallback

import (
	"fmt"

	"github.com/HendryAvila/educhain-mcp/internal/content"
)

// Notes attached to substitute bundles so consumers can tell them apart
// from authoritative output.
const (
	NoteGenerationFailed = "This is fallback content due to API failure."
	NoteNoCache          = "This is fallback content. Run 'educhain-mcp generate' for AI-generated content."
)

// Difficulty is the difficulty label carried by flashcard bundles.
const Difficulty = "Simple"

// Generate builds a substitute bundle for the request. An empty note
// defaults to NoteGenerationFailed. Counts below 1 yield an empty list.
func Generate(req content.Request, note string) content.Bundle {
	if note == "" {
		note = NoteGenerationFailed
	}

	b := content.Bundle{
		Kind:        req.Kind,
		Topic:       req.Topic,
		GeneratedAt: timeNow(),
		GeneratedBy: content.ProvenanceFallback,
		Note:        note,
	}

	switch req.Kind {
	case content.KindMCQ:
		b.Questions = Questions(req.Count)
		b.TotalQuestions = req.Count
	case content.KindFlashcards:
		b.Flashcards = Flashcards(req.Count)
		b.Count = req.Count
		b.Difficulty = Difficulty
	case content.KindLessonPlan:
		b.Title = fmt.Sprintf("Introduction to %s", req.Topic)
		b.Duration = req.Duration
		b.GradeLevel = req.GradeLevel
		b.LearningObjectives = lessonObjectives(req.Topic)
		b.LessonStructure = lessonStructure(req.Topic)
	}
	return b
}

// Questions returns exactly n questions cycled from the sample set with
// ids 1..n.
func Questions(n int) []content.MCQItem {
	return content.RenumberQuestions(cycle(sampleQuestions, n))
}

// Flashcards returns exactly n cards cycled from the sample set with
// ids 1..n.
func Flashcards(n int) []content.Flashcard {
	return content.RenumberFlashcards(cycle(sampleFlashcards, n))
}

// cycle repeats samples end-to-end and truncates to exactly n elements.
func cycle[T any](samples []T, n int) []T {
	if n <= 0 || len(samples) == 0 {
		return []T{}
	}
	out := make([]T, n)
	for i := range out {
		out[i] = samples[i%len(samples)]
	}
	return out
}
