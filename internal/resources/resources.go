// Package resources implements the MCP resources that expose cached
// content.
//
// Resources are read-only views over the cache files. They return the
// stored bundle exactly as written, or the structured error descriptor
// when the file is missing or malformed.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/educhain-mcp/internal/cache"
	"github.com/HendryAvila/educhain-mcp/internal/content"
)

// URIs of the content resources.
const (
	MCQURI        = "educhain://mcqs/python"
	LessonPlanURI = "educhain://lesson-plan/python"
	FlashcardsURI = "educhain://flashcards/python"
)

const mimeJSON = "application/json"

// URIs lists every content resource in registration order.
func URIs() []string {
	return []string{MCQURI, LessonPlanURI, FlashcardsURI}
}

// Handler serves the content resources from the cache.
type Handler struct {
	store cache.Store
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(store cache.Store) *Handler {
	return &Handler{store: store}
}

// Entry pairs a resource definition with its read handler.
type Entry struct {
	Resource mcp.Resource
	Handle   func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error)
}

// Entries returns every content resource in registration order.
func (h *Handler) Entries() []Entry {
	return []Entry{
		{
			Resource: mcp.NewResource(MCQURI, "Python MCQs",
				mcp.WithResourceDescription("Pre-generated multiple-choice questions on Python programming basics"),
				mcp.WithMIMEType(mimeJSON),
			),
			Handle: h.reader(content.KindMCQ),
		},
		{
			Resource: mcp.NewResource(LessonPlanURI, "Python Lesson Plan",
				mcp.WithResourceDescription("Pre-generated lesson plan on Python programming basics"),
				mcp.WithMIMEType(mimeJSON),
			),
			Handle: h.reader(content.KindLessonPlan),
		},
		{
			Resource: mcp.NewResource(FlashcardsURI, "Python Flashcards",
				mcp.WithResourceDescription("Pre-generated flashcards on Python programming basics"),
				mcp.WithMIMEType(mimeJSON),
			),
			Handle: h.reader(content.KindFlashcards),
		},
	}
}

// reader returns a read handler for one kind.
func (h *Handler) reader(kind content.Kind) func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, desc := h.store.Load(kind)
		if desc != nil {
			return textResource(req.Params.URI, desc.JSON()), nil
		}

		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", kind, err)
		}
		return textResource(req.Params.URI, string(data)), nil
	}
}

func textResource(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     text,
		},
	}
}
