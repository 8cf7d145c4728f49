// Package prompts implements the MCP prompts for studying with the
// generated content.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/educhain-mcp/internal/content"
)

// arg returns a prompt argument or def when it is absent or empty.
func arg(req mcp.GetPromptRequest, key, def string) string {
	if args := req.Params.Arguments; args != nil {
		if v, ok := args[key]; ok && v != "" {
			return v
		}
	}
	return def
}

// QuizPrompt handles the quiz-session MCP prompt.
// It has the AI fetch questions and quiz the user one at a time.
type QuizPrompt struct {
	defaultTopic string
}

// NewQuizPrompt creates a QuizPrompt.
func NewQuizPrompt(defaultTopic string) *QuizPrompt {
	return &QuizPrompt{defaultTopic: defaultTopic}
}

// Definition returns the MCP prompt definition for registration.
func (p *QuizPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("quiz-session",
		mcp.WithPromptDescription(
			"Run an interactive quiz. The assistant fetches multiple-choice questions "+
				"and asks them one at a time, checking each answer before moving on.",
		),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription(fmt.Sprintf("Quiz topic (default: %s)", p.defaultTopic)),
		),
		mcp.WithArgument("num_questions",
			mcp.ArgumentDescription(fmt.Sprintf("How many questions to ask, 1-%d (default: 5)", content.MaxCount(content.KindMCQ))),
		),
	)
}

// Handle processes the quiz-session prompt request.
func (p *QuizPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := arg(req, "topic", p.defaultTopic)

	n, err := strconv.Atoi(arg(req, "num_questions", "5"))
	if err != nil {
		return nil, fmt.Errorf("num_questions must be a number: %w", err)
	}
	if err := content.NewMCQRequest(topic, n).Validate(); err != nil {
		return nil, err
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Quiz on %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Quiz me on '%s'.\n\n"+
						"Please:\n"+
						"1. Run `generate_mcqs` with topic='%s' and num_questions=%d\n"+
						"2. Ask me the questions one at a time, showing the four options\n"+
						"3. After each answer, tell me if I was right and share the explanation\n"+
						"4. At the end, give me my score and the concepts I should review\n\n"+
						"If the questions are marked as fallback content, mention that they come from a small built-in set.",
					topic, topic, n,
				)),
			},
		},
	}, nil
}
