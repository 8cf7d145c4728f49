package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/educhain-mcp/internal/content"
)

// Tool names.
const (
	MCQToolName        = "generate_mcqs"
	LessonPlanToolName = "generate_lesson_plan"
	FlashcardsToolName = "generate_flashcards"
)

// Names lists every content tool in registration order.
var Names = []string{MCQToolName, LessonPlanToolName, FlashcardsToolName}

// --- generate_mcqs ---

// MCQTool handles the generate_mcqs MCP tool.
type MCQTool struct {
	svc *Service
}

// NewMCQTool creates an MCQTool.
func NewMCQTool(svc *Service) *MCQTool {
	return &MCQTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *MCQTool) Definition() mcp.Tool {
	return mcp.NewTool(MCQToolName,
		mcp.WithDescription(
			"Generate multiple-choice questions for a topic. "+
				"Questions for the default topic are served from pre-generated content; "+
				"other topics get simple substitute questions.",
		),
		mcp.WithString("topic",
			mcp.Description(fmt.Sprintf("Topic for the questions (default: %s)", t.svc.DefaultTopic())),
		),
		mcp.WithNumber("num_questions",
			mcp.Description(fmt.Sprintf("Number of questions (default: %d, max: %d)",
				content.DefaultCount, content.MaxCount(content.KindMCQ))),
			mcp.Min(1),
			mcp.Max(float64(content.MaxCount(content.KindMCQ))),
		),
	)
}

// Handle processes the generate_mcqs tool call.
func (t *MCQTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := content.NewMCQRequest(
		stringArg(req, "topic", t.svc.DefaultTopic()),
		intArg(req, "num_questions", content.DefaultCount),
	)
	return handle(ctx, t.svc, r)
}

// --- generate_lesson_plan ---

// LessonPlanTool handles the generate_lesson_plan MCP tool.
type LessonPlanTool struct {
	svc *Service
}

// NewLessonPlanTool creates a LessonPlanTool.
func NewLessonPlanTool(svc *Service) *LessonPlanTool {
	return &LessonPlanTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *LessonPlanTool) Definition() mcp.Tool {
	return mcp.NewTool(LessonPlanToolName,
		mcp.WithDescription(
			"Generate a phased lesson plan with learning objectives and activities.",
		),
		mcp.WithString("topic",
			mcp.Description(fmt.Sprintf("Topic of the lesson (default: %s)", t.svc.DefaultTopic())),
		),
		mcp.WithString("duration",
			mcp.Description(fmt.Sprintf("Length of the lesson (default: %s)", content.DefaultDuration)),
		),
		mcp.WithString("grade_level",
			mcp.Description(fmt.Sprintf("Target grade or skill level (default: %s)", content.DefaultGradeLevel)),
		),
	)
}

// Handle processes the generate_lesson_plan tool call.
func (t *LessonPlanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := content.NewLessonPlanRequest(
		stringArg(req, "topic", t.svc.DefaultTopic()),
		stringArg(req, "duration", content.DefaultDuration),
		stringArg(req, "grade_level", content.DefaultGradeLevel),
	)
	return handle(ctx, t.svc, r)
}

// --- generate_flashcards ---

// FlashcardsTool handles the generate_flashcards MCP tool.
type FlashcardsTool struct {
	svc *Service
}

// NewFlashcardsTool creates a FlashcardsTool.
func NewFlashcardsTool(svc *Service) *FlashcardsTool {
	return &FlashcardsTool{svc: svc}
}

// Definition returns the MCP tool definition for registration.
func (t *FlashcardsTool) Definition() mcp.Tool {
	return mcp.NewTool(FlashcardsToolName,
		mcp.WithDescription(
			"Generate study flashcards with a question on the front and the answer on the back.",
		),
		mcp.WithString("topic",
			mcp.Description(fmt.Sprintf("Topic for the flashcards (default: %s)", t.svc.DefaultTopic())),
		),
		mcp.WithNumber("num_cards",
			mcp.Description(fmt.Sprintf("Number of flashcards (default: %d, max: %d)",
				content.DefaultCount, content.MaxCount(content.KindFlashcards))),
			mcp.Min(1),
			mcp.Max(float64(content.MaxCount(content.KindFlashcards))),
		),
	)
}

// Handle processes the generate_flashcards tool call.
func (t *FlashcardsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r := content.NewFlashcardsRequest(
		stringArg(req, "topic", t.svc.DefaultTopic()),
		intArg(req, "num_cards", content.DefaultCount),
	)
	return handle(ctx, t.svc, r)
}

// handle validates r, resolves it and renders the bundle.
func handle(ctx context.Context, svc *Service, r content.Request) (*mcp.CallToolResult, error) {
	if err := r.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(svc.Resolve(ctx, r))
}
