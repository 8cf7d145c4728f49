// Package content defines the educational content model shared by the
// generation pipeline, the flat-file cache and the MCP server.
//
// A Bundle is one complete unit of generated content (an MCQ set, a lesson
// plan or a flashcard set) plus provenance metadata. Bundles are values:
// helpers that change a bundle return a fresh copy instead of patching
// the original in place.
package content

import (
	"fmt"
)

// DefaultTopic is the single built-in topic the system serves from cache.
const DefaultTopic = "Python Programming Basics"

// --- Content kind enum ---

// Kind selects which shape of content a request or bundle carries.
type Kind string

const (
	KindMCQ        Kind = "mcq"
	KindLessonPlan Kind = "lesson_plan"
	KindFlashcards Kind = "flashcards"
)

// Kinds lists every kind in batch generation order.
var Kinds = []Kind{KindMCQ, KindLessonPlan, KindFlashcards}

// maxCounts bounds the item count a caller may request per list kind.
// Lesson plans are a single structured object and carry no count.
var maxCounts = map[Kind]int{
	KindMCQ:        10,
	KindFlashcards: 15,
}

// ValidateKind returns an error if the kind is not recognized.
func ValidateKind(k Kind) error {
	switch k {
	case KindMCQ, KindLessonPlan, KindFlashcards:
		return nil
	}
	return fmt.Errorf("invalid content kind %q: must be one of: mcq, lesson_plan, flashcards", k)
}

// MaxCount returns the largest count a caller may request for the kind,
// or 0 when the kind is not a list.
func MaxCount(k Kind) int {
	return maxCounts[k]
}

// --- Provenance enum ---

// Provenance distinguishes externally generated content from the locally
// synthesized substitute.
type Provenance string

const (
	ProvenancePrimary  Provenance = "PRIMARY"
	ProvenanceFallback Provenance = "FALLBACK"
)

// --- Items ---

// MCQItem is one multiple-choice question.
type MCQItem struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// LessonPhase is one timed phase of a lesson plan.
type LessonPhase struct {
	Phase      string   `json:"phase"`
	Duration   string   `json:"duration"`
	Activities []string `json:"activities"`
}

// Flashcard is one front/back study card.
type Flashcard struct {
	ID       int    `json:"id"`
	Front    string `json:"front"`
	Back     string `json:"back"`
	Category string `json:"category"`
}

// DefaultCategory is used for flashcards the generator left uncategorized.
const DefaultCategory = "General"

// OptionCount is the number of options every MCQ carries.
const OptionCount = 4
