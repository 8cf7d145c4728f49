// Package templates renders the generation prompts sent to the model.
//
// Templates are embedded at build time so the binary carries no runtime
// file dependencies. Each kind of content has its own template and data
// type; the system template scopes the model to its role.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed files/*.tmpl
var files embed.FS

// Template names.
const (
	System     = "system.tmpl"
	MCQ        = "mcq.tmpl"
	LessonPlan = "lesson_plan.tmpl"
	Flashcards = "flashcards.tmpl"
)

// Renderer renders a named template with data.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// TemplateRenderer is the embed-backed Renderer.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.New("").Option("missingkey=error").ParseFS(files, "files/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing prompt templates: %w", err)
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

// Render executes the named template.
func (r *TemplateRenderer) Render(name string, data any) (string, error) {
	t := r.tmpl.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

// --- Template data ---

// SystemData fills the system prompt.
type SystemData struct {
	Topic string
}

// MCQData fills the multiple-choice prompt.
type MCQData struct {
	Topic        string
	Count        int
	OptionCount  int
	Instructions string
}

// LessonPlanData fills the lesson-plan prompt.
type LessonPlanData struct {
	Topic      string
	Duration   string
	GradeLevel string
	Objectives []string
}

// FlashcardsData fills the flashcard prompt.
type FlashcardsData struct {
	Topic        string
	Count        int
	Instructions string
}
