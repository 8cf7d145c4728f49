package content

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Bundle is one complete unit of generated content plus provenance.
//
// Only the list matching Kind is populated: Questions for MCQ,
// LessonStructure (with Title and LearningObjectives) for lesson plans,
// Flashcards for flashcard sets. The JSON field names are the flat-file
// contract read back by the server.
type Bundle struct {
	Kind  Kind   `json:"kind"`
	Topic string `json:"topic"`

	// MCQ
	Questions      []MCQItem `json:"questions,omitempty"`
	TotalQuestions int       `json:"total_questions,omitempty"`

	// Lesson plan
	Title              string        `json:"title,omitempty"`
	Duration           string        `json:"duration,omitempty"`
	GradeLevel         string        `json:"grade_level,omitempty"`
	LearningObjectives []string      `json:"learning_objectives,omitempty"`
	LessonStructure    []LessonPhase `json:"lesson_structure,omitempty"`

	// Flashcards
	Flashcards []Flashcard `json:"flashcards,omitempty"`
	Count      int         `json:"count,omitempty"`
	Difficulty string      `json:"difficulty,omitempty"`

	// RequestedCount is only set on cache-hit responses, recording what the
	// caller asked for when the cached list was served unchanged.
	RequestedCount int `json:"requested_count,omitempty"`

	GeneratedAt time.Time  `json:"generated_at"`
	GeneratedBy Provenance `json:"generated_by"`
	Model       string     `json:"model,omitempty"`
	Note        string     `json:"note,omitempty"`
}

// Provenance labels written by earlier releases of the content generator.
var legacyProvenance = map[string]Provenance{
	"EduChain with Google Gemini": ProvenancePrimary,
	"Fallback System":             ProvenanceFallback,
}

// localTimestamp is the layout of timestamps written without a UTC offset.
const localTimestamp = "2006-01-02T15:04:05.999999999"

// UnmarshalJSON decodes a bundle, also accepting files from earlier
// releases: generated_at without a UTC offset is read as local time and
// the old generated_by labels map onto PRIMARY and FALLBACK.
func (b *Bundle) UnmarshalJSON(data []byte) error {
	type plain Bundle
	aux := struct {
		*plain
		GeneratedAt string `json:"generated_at"`
		GeneratedBy string `json:"generated_by"`
	}{plain: (*plain)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	at, err := parseTimestamp(aux.GeneratedAt)
	if err != nil {
		return err
	}
	b.GeneratedAt = at

	b.GeneratedBy = Provenance(aux.GeneratedBy)
	if p, ok := legacyProvenance[aux.GeneratedBy]; ok {
		b.GeneratedBy = p
	}
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(localTimestamp, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid generated_at %q: %w", s, err)
	}
	return t, nil
}

// ItemCount returns the length of the list that matches the bundle's kind.
func (b Bundle) ItemCount() int {
	switch b.Kind {
	case KindMCQ:
		return len(b.Questions)
	case KindLessonPlan:
		return len(b.LessonStructure)
	case KindFlashcards:
		return len(b.Flashcards)
	}
	return 0
}

// Clone returns a deep copy so callers can derive a new bundle without
// sharing slices with the original.
func (b Bundle) Clone() Bundle {
	out := b
	if b.Questions != nil {
		out.Questions = make([]MCQItem, len(b.Questions))
		for i, q := range b.Questions {
			q.Options = slices.Clone(q.Options)
			out.Questions[i] = q
		}
	}
	out.LearningObjectives = slices.Clone(b.LearningObjectives)
	if b.LessonStructure != nil {
		out.LessonStructure = make([]LessonPhase, len(b.LessonStructure))
		for i, p := range b.LessonStructure {
			p.Activities = slices.Clone(p.Activities)
			out.LessonStructure[i] = p
		}
	}
	out.Flashcards = slices.Clone(b.Flashcards)
	return out
}

// WithRequest returns a copy of b carrying the caller's requested
// parameters and a fresh timestamp. The item lists are left untouched:
// a cached set of 10 questions served for a request of 3 still holds 10
// items, with RequestedCount recording the 3.
func (b Bundle) WithRequest(req Request, now time.Time) Bundle {
	out := b.Clone()
	switch req.Kind {
	case KindMCQ, KindFlashcards:
		out.RequestedCount = req.Count
	case KindLessonPlan:
		out.Duration = req.Duration
		out.GradeLevel = req.GradeLevel
	}
	out.GeneratedAt = now
	return out
}

// Check verifies the bundle invariants: ids contiguous 1..N, four options
// per question with the correct answer among them, and a non-empty
// structure for lesson plans.
func Check(b Bundle) error {
	if err := ValidateKind(b.Kind); err != nil {
		return err
	}
	switch b.GeneratedBy {
	case ProvenancePrimary, ProvenanceFallback:
	default:
		return fmt.Errorf("invalid provenance %q", b.GeneratedBy)
	}

	switch b.Kind {
	case KindMCQ:
		for i, q := range b.Questions {
			if q.ID != i+1 {
				return fmt.Errorf("question %d has id %d, want %d", i, q.ID, i+1)
			}
			if len(q.Options) != OptionCount {
				return fmt.Errorf("question %d has %d options, want %d", q.ID, len(q.Options), OptionCount)
			}
			if !slices.Contains(q.Options, q.CorrectAnswer) {
				return fmt.Errorf("question %d: correct answer %q is not one of its options", q.ID, q.CorrectAnswer)
			}
		}
	case KindFlashcards:
		for i, c := range b.Flashcards {
			if c.ID != i+1 {
				return fmt.Errorf("flashcard %d has id %d, want %d", i, c.ID, i+1)
			}
		}
	case KindLessonPlan:
		if len(b.LessonStructure) == 0 {
			return fmt.Errorf("lesson plan has no phases")
		}
	}
	return nil
}

// RenumberQuestions returns a copy of the questions with ids set to 1..len.
func RenumberQuestions(qs []MCQItem) []MCQItem {
	out := make([]MCQItem, len(qs))
	for i, q := range qs {
		q.Options = slices.Clone(q.Options)
		q.ID = i + 1
		out[i] = q
	}
	return out
}

// RenumberFlashcards returns a copy of the cards with ids set to 1..len.
func RenumberFlashcards(cs []Flashcard) []Flashcard {
	out := make([]Flashcard, len(cs))
	for i, c := range cs {
		c.ID = i + 1
		out[i] = c
	}
	return out
}
