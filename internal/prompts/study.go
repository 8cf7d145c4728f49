package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/educhain-mcp/internal/content"
)

// StudyPlanPrompt handles the study-plan MCP prompt.
// It combines a lesson plan and flashcards into a study session.
type StudyPlanPrompt struct {
	defaultTopic string
}

// NewStudyPlanPrompt creates a StudyPlanPrompt.
func NewStudyPlanPrompt(defaultTopic string) *StudyPlanPrompt {
	return &StudyPlanPrompt{defaultTopic: defaultTopic}
}

// Definition returns the MCP prompt definition for registration.
func (p *StudyPlanPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("study-plan",
		mcp.WithPromptDescription(
			"Build a study session from a lesson plan and a deck of flashcards.",
		),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription(fmt.Sprintf("Topic to study (default: %s)", p.defaultTopic)),
		),
		mcp.WithArgument("duration",
			mcp.ArgumentDescription(fmt.Sprintf("Time available (default: %s)", content.DefaultDuration)),
		),
		mcp.WithArgument("grade_level",
			mcp.ArgumentDescription(fmt.Sprintf("Your level (default: %s)", content.DefaultGradeLevel)),
		),
	)
}

// Handle processes the study-plan prompt request.
func (p *StudyPlanPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := arg(req, "topic", p.defaultTopic)
	duration := arg(req, "duration", content.DefaultDuration)
	grade := arg(req, "grade_level", content.DefaultGradeLevel)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Study plan for %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Help me study '%s'. I have %s and my level is %s.\n\n"+
						"Please:\n"+
						"1. Run `generate_lesson_plan` with topic='%s', duration='%s' and grade_level='%s'\n"+
						"2. Run `generate_flashcards` with topic='%s'\n"+
						"3. Walk me through the lesson phases in order, keeping to their durations\n"+
						"4. After each phase, review the flashcards whose category matches what we just covered",
					topic, duration, grade, topic, duration, grade, topic,
				)),
			},
		},
	}, nil
}
