// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on abstractions.
// No business logic lives here, only wiring.
package server

import (
	"errors"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/educhain-mcp/internal/cache"
	"github.com/HendryAvila/educhain-mcp/internal/content"
	"github.com/HendryAvila/educhain-mcp/internal/prompts"
	"github.com/HendryAvila/educhain-mcp/internal/resources"
	"github.com/HendryAvila/educhain-mcp/internal/tools"
)

// Name is the server name announced during the MCP handshake.
const Name = "educhain-mcp"

// Version is set at build time via ldflags.
var Version = "dev"

// Deps are the collaborators the server is built from.
type Deps struct {
	Store cache.Store

	// Generator enables live generation for cache misses and other
	// topics. Nil serves fallback content instead.
	Generator tools.Generator

	// DefaultTopic is the topic whose content is cached.
	DefaultTopic string

	Log *zap.Logger
}

// New creates and configures the MCP server with all tools, prompts,
// and resources registered.
func New(d Deps) (*server.MCPServer, error) {
	if d.Store == nil {
		return nil, errors.New("server: a cache store is required")
	}
	if d.DefaultTopic == "" {
		d.DefaultTopic = content.DefaultTopic
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register content tools ---

	svc := tools.NewService(d.Store, d.Generator, d.DefaultTopic, d.Log)

	mcqTool := tools.NewMCQTool(svc)
	s.AddTool(mcqTool.Definition(), mcqTool.Handle)

	lessonPlanTool := tools.NewLessonPlanTool(svc)
	s.AddTool(lessonPlanTool.Definition(), lessonPlanTool.Handle)

	flashcardsTool := tools.NewFlashcardsTool(svc)
	s.AddTool(flashcardsTool.Definition(), flashcardsTool.Handle)

	// --- Register resources ---

	for _, e := range resources.NewHandler(d.Store).Entries() {
		s.AddResource(e.Resource, e.Handle)
	}

	// --- Register prompts ---

	quizPrompt := prompts.NewQuizPrompt(d.DefaultTopic)
	s.AddPrompt(quizPrompt.Definition(), quizPrompt.Handle)

	studyPlanPrompt := prompts.NewStudyPlanPrompt(d.DefaultTopic)
	s.AddPrompt(studyPlanPrompt.Definition(), studyPlanPrompt.Handle)

	return s, nil
}

// CheckPrerequisites reports the cache files the server expects but
// cannot find, logging a warning for each. It creates the cache
// directory if needed and never blocks startup on its own.
func CheckPrerequisites(store cache.Store, log *zap.Logger) ([]string, error) {
	missing, err := store.Missing()
	if err != nil {
		return nil, err
	}
	for _, path := range missing {
		log.Warn("content file missing, serving fallback content",
			zap.String("path", path),
			zap.String("suggestion", cache.SuggestGenerate),
		)
	}
	return missing, nil
}

func serverInstructions() string {
	return `You have access to EduChain, an MCP server that serves educational content about Python programming basics.

## TOOLS

- generate_mcqs(topic, num_questions): multiple-choice questions, 1-10, four options each
- generate_lesson_plan(topic, duration, grade_level): a phased lesson plan with objectives
- generate_flashcards(topic, num_cards): study flashcards, 1-15

Every result is JSON. Check "generated_by": PRIMARY content was produced by the
generation model; FALLBACK content comes from a small built-in sample set and
carries a "note" saying so. Tell the user when you are showing fallback content.

Cached content for the default topic may hold more items than requested; the
requested number is in "requested_count". Use only that many items.

## RESOURCES

- educhain://mcqs/python
- educhain://lesson-plan/python
- educhain://flashcards/python

Resources return the stored content unchanged, or an {"error", "suggestion"}
object when it has not been generated yet.

## PROMPTS

- quiz-session: quiz the user one question at a time
- study-plan: walk through a lesson plan with flashcard review`
}
