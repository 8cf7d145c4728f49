package fallback

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/HendryAvila/educhain-mcp/internal/content"
)

func fixedClock(t *testing.T) time.Time {
	t.Helper()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = orig })
	return fixed
}

// --- MCQ ---

func TestGenerate_MCQ_CountsAndIDs(t *testing.T) {
	for _, n := range []int{1, 3, 5, 6, 7, 10, 11, 23} {
		b := Generate(content.NewMCQRequest(content.DefaultTopic, n), "")

		if len(b.Questions) != n {
			t.Fatalf("n=%d: got %d questions", n, len(b.Questions))
		}
		if b.TotalQuestions != n {
			t.Errorf("n=%d: TotalQuestions = %d", n, b.TotalQuestions)
		}
		seen := map[int]bool{}
		for i, q := range b.Questions {
			if q.ID != i+1 {
				t.Errorf("n=%d: question %d id = %d, want %d", n, i, q.ID, i+1)
			}
			if seen[q.ID] {
				t.Errorf("n=%d: duplicate id %d", n, q.ID)
			}
			seen[q.ID] = true
			if len(q.Options) != content.OptionCount {
				t.Errorf("n=%d: question %d has %d options", n, q.ID, len(q.Options))
			}
			if !slices.Contains(q.Options, q.CorrectAnswer) {
				t.Errorf("n=%d: question %d answer %q not in options", n, q.ID, q.CorrectAnswer)
			}
		}
		if err := content.Check(b); err != nil {
			t.Errorf("n=%d: Check = %v", n, err)
		}
	}
}

func TestGenerate_MCQ_CyclesSampleSet(t *testing.T) {
	b := Generate(content.NewMCQRequest("Anything", 7), "")

	// Item 6 wraps around to the first sample, item 7 to the second.
	if b.Questions[5].Question != sampleQuestions[0].Question {
		t.Errorf("question 6 = %q, want first sample", b.Questions[5].Question)
	}
	if b.Questions[6].Question != sampleQuestions[1].Question {
		t.Errorf("question 7 = %q, want second sample", b.Questions[6].Question)
	}
}

func TestGenerate_MCQ_DoesNotAliasSamples(t *testing.T) {
	b := Generate(content.NewMCQRequest(content.DefaultTopic, 6), "")
	b.Questions[0].Options[0] = "mutated"
	b.Questions[0].ID = 99

	if sampleQuestions[0].Options[0] != "x = 5" {
		t.Error("mutating output changed the sample options")
	}
	if sampleQuestions[0].ID != 1 {
		t.Error("mutating output changed the sample ids")
	}
}

func TestGenerate_ZeroCount(t *testing.T) {
	b := Generate(content.NewMCQRequest(content.DefaultTopic, 0), "")
	if len(b.Questions) != 0 {
		t.Errorf("got %d questions for count 0", len(b.Questions))
	}
	f := Generate(content.NewFlashcardsRequest(content.DefaultTopic, -2), "")
	if len(f.Flashcards) != 0 {
		t.Errorf("got %d flashcards for negative count", len(f.Flashcards))
	}
}

// --- Flashcards ---

func TestGenerate_Flashcards(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 10, 15} {
		b := Generate(content.NewFlashcardsRequest(content.DefaultTopic, n), "")

		if len(b.Flashcards) != n {
			t.Fatalf("n=%d: got %d cards", n, len(b.Flashcards))
		}
		for i, c := range b.Flashcards {
			if c.ID != i+1 {
				t.Errorf("n=%d: card %d id = %d", n, i, c.ID)
			}
			want := sampleFlashcards[i%len(sampleFlashcards)]
			if c.Front != want.Front || c.Category != want.Category {
				t.Errorf("n=%d: card %d = %+v, want cycled sample %+v", n, c.ID, c, want)
			}
		}
		if b.Count != n {
			t.Errorf("n=%d: Count = %d", n, b.Count)
		}
		if b.Difficulty != Difficulty {
			t.Errorf("Difficulty = %q", b.Difficulty)
		}
	}
}

// --- Lesson plan ---

func TestGenerate_LessonPlan(t *testing.T) {
	req := content.NewLessonPlanRequest("Go Basics", "45 minutes", "Intermediate")
	b := Generate(req, "")

	if b.Title != "Introduction to Go Basics" {
		t.Errorf("Title = %q", b.Title)
	}
	if b.Duration != "45 minutes" || b.GradeLevel != "Intermediate" {
		t.Errorf("duration=%q grade=%q", b.Duration, b.GradeLevel)
	}
	if len(b.LessonStructure) != 2 {
		t.Fatalf("got %d phases, want 2", len(b.LessonStructure))
	}
	if b.LessonStructure[0].Phase != "Introduction" || b.LessonStructure[1].Phase != "Main Content" {
		t.Errorf("phases = %q, %q", b.LessonStructure[0].Phase, b.LessonStructure[1].Phase)
	}
	if !strings.Contains(b.LessonStructure[0].Activities[0], "Go Basics") {
		t.Errorf("introduction activity should mention the topic: %q", b.LessonStructure[0].Activities[0])
	}
	if len(b.LearningObjectives) != 3 {
		t.Errorf("got %d objectives, want 3", len(b.LearningObjectives))
	}
}

// --- Provenance ---

func TestGenerate_MarksFallback(t *testing.T) {
	now := fixedClock(t)

	for _, req := range []content.Request{
		content.NewMCQRequest(content.DefaultTopic, 2),
		content.NewFlashcardsRequest(content.DefaultTopic, 2),
		content.NewLessonPlanRequest(content.DefaultTopic, content.DefaultDuration, content.DefaultGradeLevel),
	} {
		b := Generate(req, "")
		if b.GeneratedBy != content.ProvenanceFallback {
			t.Errorf("%s: GeneratedBy = %s", req.Kind, b.GeneratedBy)
		}
		if b.Note != NoteGenerationFailed {
			t.Errorf("%s: Note = %q", req.Kind, b.Note)
		}
		if !b.GeneratedAt.Equal(now) {
			t.Errorf("%s: GeneratedAt = %v, want %v", req.Kind, b.GeneratedAt, now)
		}
		if b.Kind != req.Kind || b.Topic != req.Topic {
			t.Errorf("%s: kind/topic not carried over", req.Kind)
		}
	}
}

func TestGenerate_CustomNote(t *testing.T) {
	b := Generate(content.NewMCQRequest(content.DefaultTopic, 1), NoteNoCache)
	if b.Note != NoteNoCache {
		t.Errorf("Note = %q, want %q", b.Note, NoteNoCache)
	}
}

func TestSampleSizes(t *testing.T) {
	sizes := SampleSizes()
	if sizes[content.KindMCQ] != 5 || sizes[content.KindFlashcards] != 3 {
		t.Errorf("SampleSizes = %v, want mcq=5 flashcards=3", sizes)
	}
}
