package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/HendryAvila/educhain-mcp/internal/content"
	"github.com/HendryAvila/educhain-mcp/internal/fallback"
)

// --- Model output shapes ---

type mcqOutput struct {
	Questions []struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
		Explanation   string   `json:"explanation"`
	} `json:"questions"`
}

type lessonPlanOutput struct {
	Title              string                `json:"title"`
	LearningObjectives []string              `json:"learning_objectives"`
	LessonStructure    []content.LessonPhase `json:"lesson_structure"`
}

type flashcardsOutput struct {
	Flashcards []struct {
		Front    string `json:"front"`
		Back     string `json:"back"`
		Category string `json:"category"`
	} `json:"flashcards"`
}

// convert maps raw model output onto a PRIMARY bundle sized to the
// request. Short lists are topped up from the sample set and long ones
// truncated, so the item count always equals req.Count.
func convert(req content.Request, raw json.RawMessage) (content.Bundle, error) {
	b := content.Bundle{
		Kind:        req.Kind,
		Topic:       req.Topic,
		GeneratedBy: content.ProvenancePrimary,
	}

	switch req.Kind {
	case content.KindMCQ:
		var out mcqOutput
		if err := json.Unmarshal(raw, &out); err != nil {
			return b, fmt.Errorf("decoding questions: %w", err)
		}
		qs := make([]content.MCQItem, 0, len(out.Questions))
		for _, q := range out.Questions {
			qs = append(qs, content.MCQItem{
				Question:      strings.TrimSpace(q.Question),
				Options:       trimAll(q.Options),
				CorrectAnswer: matchOption(q.Options, q.CorrectAnswer),
				Explanation:   strings.TrimSpace(q.Explanation),
			})
		}
		b.Questions = fitQuestions(qs, req.Count)
		b.TotalQuestions = req.Count

	case content.KindLessonPlan:
		var out lessonPlanOutput
		if err := json.Unmarshal(raw, &out); err != nil {
			return b, fmt.Errorf("decoding lesson plan: %w", err)
		}
		b.Title = out.Title
		if b.Title == "" {
			b.Title = fmt.Sprintf("Introduction to %s", req.Topic)
		}
		b.Duration = req.Duration
		b.GradeLevel = req.GradeLevel
		b.LearningObjectives = out.LearningObjectives
		b.LessonStructure = out.LessonStructure

	case content.KindFlashcards:
		var out flashcardsOutput
		if err := json.Unmarshal(raw, &out); err != nil {
			return b, fmt.Errorf("decoding flashcards: %w", err)
		}
		cs := make([]content.Flashcard, 0, len(out.Flashcards))
		for _, c := range out.Flashcards {
			category := strings.TrimSpace(c.Category)
			if category == "" {
				category = content.DefaultCategory
			}
			cs = append(cs, content.Flashcard{
				Front:    strings.TrimSpace(c.Front),
				Back:     strings.TrimSpace(c.Back),
				Category: category,
			})
		}
		b.Flashcards = fitFlashcards(cs, req.Count)
		b.Count = req.Count
		b.Difficulty = fallback.Difficulty

	default:
		return b, fmt.Errorf("cannot convert kind %q", req.Kind)
	}

	if err := content.Check(b); err != nil {
		return b, err
	}
	return b, nil
}

// fitQuestions truncates or tops up qs to exactly n items with ids 1..n.
func fitQuestions(qs []content.MCQItem, n int) []content.MCQItem {
	if len(qs) > n {
		qs = qs[:n]
	}
	if missing := n - len(qs); missing > 0 {
		qs = append(qs, fallback.Questions(missing)...)
	}
	return content.RenumberQuestions(qs)
}

// fitFlashcards truncates or tops up cs to exactly n items with ids 1..n.
func fitFlashcards(cs []content.Flashcard, n int) []content.Flashcard {
	if len(cs) > n {
		cs = cs[:n]
	}
	if missing := n - len(cs); missing > 0 {
		cs = append(cs, fallback.Flashcards(missing)...)
	}
	return content.RenumberFlashcards(cs)
}

// matchOption returns the option equal to answer ignoring surrounding
// whitespace and case, or the trimmed answer when none matches.
func matchOption(options []string, answer string) string {
	answer = strings.TrimSpace(answer)
	for _, o := range options {
		if strings.EqualFold(strings.TrimSpace(o), answer) {
			return strings.TrimSpace(o)
		}
	}
	return answer
}

func trimAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
