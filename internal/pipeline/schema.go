package pipeline

import (
	"github.com/HendryAvila/educhain-mcp/internal/content"
	"github.com/HendryAvila/educhain-mcp/internal/llm"
)

// Output schemas requested from the model. Cardinality (item counts,
// four options per question) is not expressed here because strict
// structured-output modes reject minItems/maxItems; it is enforced after
// conversion instead.

func object(props map[string]any, required ...string) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func array(items map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": items}
}

func str() map[string]any {
	return map[string]any{"type": "string"}
}

var mcqSchema = &llm.Schema{
	Name:        "mcq-set",
	Description: "A set of multiple-choice questions",
	Definition: object(map[string]any{
		"questions": array(object(map[string]any{
			"question":       str(),
			"options":        array(str()),
			"correct_answer": str(),
			"explanation":    str(),
		}, "question", "options", "correct_answer", "explanation")),
	}, "questions"),
}

var lessonPlanSchema = &llm.Schema{
	Name:        "lesson-plan",
	Description: "A phased lesson plan",
	Definition: object(map[string]any{
		"title":               str(),
		"learning_objectives": array(str()),
		"lesson_structure": array(object(map[string]any{
			"phase":      str(),
			"duration":   str(),
			"activities": array(str()),
		}, "phase", "duration", "activities")),
	}, "title", "learning_objectives", "lesson_structure"),
}

var flashcardsSchema = &llm.Schema{
	Name:        "flashcard-set",
	Description: "A set of study flashcards",
	Definition: object(map[string]any{
		"flashcards": array(object(map[string]any{
			"front":    str(),
			"back":     str(),
			"category": str(),
		}, "front", "back", "category")),
	}, "flashcards"),
}

// SchemaFor returns the output schema requested for a content kind.
func SchemaFor(kind content.Kind) *llm.Schema {
	switch kind {
	case content.KindMCQ:
		return mcqSchema
	case content.KindLessonPlan:
		return lessonPlanSchema
	case content.KindFlashcards:
		return flashcardsSchema
	}
	return nil
}
