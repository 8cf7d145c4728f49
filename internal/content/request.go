package content

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Defaults applied by the server when a caller omits an argument.
const (
	DefaultCount      = 10
	DefaultDuration   = "60 minutes"
	DefaultGradeLevel = "Beginner"
)

var validate = validator.New()

// Request describes one invocation of the generator for a single kind.
// Count applies to MCQ and flashcard requests; Duration and GradeLevel
// apply to lesson plans.
type Request struct {
	Kind       Kind   `json:"kind" validate:"required,oneof=mcq lesson_plan flashcards"`
	Topic      string `json:"topic" validate:"required"`
	Count      int    `json:"count,omitempty"`
	Duration   string `json:"duration,omitempty"`
	GradeLevel string `json:"grade_level,omitempty"`
}

// NewMCQRequest builds a request for count multiple-choice questions.
func NewMCQRequest(topic string, count int) Request {
	return Request{Kind: KindMCQ, Topic: topic, Count: count}
}

// NewLessonPlanRequest builds a lesson plan request.
func NewLessonPlanRequest(topic, duration, gradeLevel string) Request {
	return Request{Kind: KindLessonPlan, Topic: topic, Duration: duration, GradeLevel: gradeLevel}
}

// NewFlashcardsRequest builds a request for count flashcards.
func NewFlashcardsRequest(topic string, count int) Request {
	return Request{Kind: KindFlashcards, Topic: topic, Count: count}
}

// Validate checks the request against the per-kind bounds.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return fmt.Errorf("'topic' must not be empty")
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid %s request: %w", r.Kind, err)
	}

	switch r.Kind {
	case KindMCQ, KindFlashcards:
		max := MaxCount(r.Kind)
		if err := validate.Var(r.Count, fmt.Sprintf("min=1,max=%d", max)); err != nil {
			return fmt.Errorf("count must be between 1 and %d for %s, got %d", max, r.Kind, r.Count)
		}
	case KindLessonPlan:
		if strings.TrimSpace(r.Duration) == "" {
			return fmt.Errorf("'duration' must not be empty")
		}
		if strings.TrimSpace(r.GradeLevel) == "" {
			return fmt.Errorf("'grade_level' must not be empty")
		}
	}
	return nil
}
