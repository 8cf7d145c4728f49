package pipeline

import (
	"fmt"

	"github.com/HendryAvila/educhain-mcp/internal/content"
	"github.com/HendryAvila/educhain-mcp/internal/llm"
	"github.com/HendryAvila/educhain-mcp/internal/templates"
)

// Extra guidance that keeps generated material at an introductory level.
const (
	mcqInstructions        = "Generate simple questions focusing only on Python variables, print function, and basic for loops."
	flashcardsInstructions = "Focus on simple Python concepts: variables, print function, and basic for loops."
)

// lessonObjectives are the objectives every generated lesson plan targets.
var lessonObjectives = []string{
	"Understand basic Python syntax for variables and print function",
	"Write simple Python programs using variables and basic for loops",
	"Apply basic Python data types like strings and numbers",
}

// buildRequest renders the prompts for req and attaches the output schema.
func (p *Pipeline) buildRequest(req content.Request) (llm.Request, error) {
	system, err := p.renderer.Render(templates.System, templates.SystemData{Topic: req.Topic})
	if err != nil {
		return llm.Request{}, err
	}

	var name string
	var data any
	switch req.Kind {
	case content.KindMCQ:
		name = templates.MCQ
		data = templates.MCQData{
			Topic:        req.Topic,
			Count:        req.Count,
			OptionCount:  content.OptionCount,
			Instructions: mcqInstructions,
		}
	case content.KindLessonPlan:
		name = templates.LessonPlan
		data = templates.LessonPlanData{
			Topic:      req.Topic,
			Duration:   req.Duration,
			GradeLevel: req.GradeLevel,
			Objectives: lessonObjectives,
		}
	case content.KindFlashcards:
		name = templates.Flashcards
		data = templates.FlashcardsData{
			Topic:        req.Topic,
			Count:        req.Count,
			Instructions: flashcardsInstructions,
		}
	default:
		return llm.Request{}, fmt.Errorf("no prompt for kind %q", req.Kind)
	}

	user, err := p.renderer.Render(name, data)
	if err != nil {
		return llm.Request{}, err
	}

	return llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:      SchemaFor(req.Kind),
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}, nil
}
