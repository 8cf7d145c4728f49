package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/HendryAvila/educhain-mcp/internal/content"
)

func testBundle() content.Bundle {
	return content.Bundle{
		Kind:  content.KindMCQ,
		Topic: content.DefaultTopic,
		Questions: []content.MCQItem{
			{ID: 1, Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "b", Explanation: "e"},
		},
		TotalQuestions: 1,
		GeneratedAt:    time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		GeneratedBy:    content.ProvenancePrimary,
		Model:          "mock",
	}
}

// --- Paths ---

func TestPathFor(t *testing.T) {
	tests := []struct {
		kind content.Kind
		want string
	}{
		{content.KindMCQ, MCQFile},
		{content.KindLessonPlan, LessonPlanFile},
		{content.KindFlashcards, FlashcardsFile},
	}
	for _, tt := range tests {
		got := PathFor("/out", tt.kind)
		if got != filepath.Join("/out", tt.want) {
			t.Errorf("PathFor(%s) = %s", tt.kind, got)
		}
	}
	if FileName("essay") != "" {
		t.Error("FileName(unknown) should be empty")
	}
}

// --- Save / Load ---

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", MCQFile)
	orig := testBundle()

	if err := Save(orig, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, desc := Load(path)
	if desc != nil {
		t.Fatalf("Load: %v", desc)
	}
	if got.Questions[0].CorrectAnswer != "b" || got.Model != "mock" {
		t.Errorf("loaded bundle = %+v", got)
	}
	if !got.GeneratedAt.Equal(orig.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", got.GeneratedAt, orig.GeneratedAt)
	}
}

func TestSave_IndentedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), MCQFile)
	if err := Save(testBundle(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"kind\": \"mcq\"") {
		t.Errorf("file is not indented JSON:\n%s", data)
	}
	if !strings.Contains(string(data), `"generated_by": "PRIMARY"`) {
		t.Errorf("file missing provenance:\n%s", data)
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Save(testBundle(), filepath.Join(dir, MCQFile)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the cache file", len(entries))
	}
}

func TestSave_UnwritableDirectory(t *testing.T) {
	// A regular file where the directory should be makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := Save(testBundle(), filepath.Join(blocker, MCQFile)); err == nil {
		t.Fatal("Save into a file path should fail")
	}
}

func TestLoad_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), MCQFile)
	got, desc := Load(path)
	if got != nil {
		t.Fatal("Load of a missing file returned a bundle")
	}
	if desc.Reason != ReasonNotFound {
		t.Errorf("Reason = %s", desc.Reason)
	}
	if desc.Message != "File not found: "+path {
		t.Errorf("Message = %q", desc.Message)
	}
	if desc.Suggestion != SuggestGenerate {
		t.Errorf("Suggestion = %q", desc.Suggestion)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), MCQFile)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, desc := Load(path)
	if desc == nil || desc.Reason != ReasonMalformed {
		t.Fatalf("desc = %+v, want malformed", desc)
	}
	if !strings.HasPrefix(desc.Message, "Invalid JSON format in ") {
		t.Errorf("Message = %q", desc.Message)
	}
	if desc.Details == "" {
		t.Error("malformed descriptor should carry details")
	}
}

func TestErrorDescriptor_JSON(t *testing.T) {
	desc := &ErrorDescriptor{Message: "File not found: x", Suggestion: SuggestGenerate, Reason: ReasonNotFound}

	var got map[string]any
	if err := json.Unmarshal([]byte(desc.JSON()), &got); err != nil {
		t.Fatalf("descriptor JSON does not parse: %v", err)
	}
	if got["error"] != "File not found: x" || got["suggestion"] != SuggestGenerate {
		t.Errorf("descriptor JSON = %v", got)
	}
	if _, ok := got["details"]; ok {
		t.Error("empty details should be omitted")
	}
	if _, ok := got["Reason"]; ok {
		t.Error("reason is internal and should not be serialized")
	}
}

// --- FileStore ---

func TestFileStore_SaveLoad(t *testing.T) {
	s := NewFileStore(t.TempDir(), nil)

	if err := s.Save(testBundle()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, desc := s.Load(content.KindMCQ)
	if desc != nil {
		t.Fatalf("Load: %v", desc)
	}
	if b.ItemCount() != 1 {
		t.Errorf("ItemCount = %d", b.ItemCount())
	}
}

func TestFileStore_SaveRejectsUnknownKind(t *testing.T) {
	s := NewFileStore(t.TempDir(), nil)
	if err := s.Save(content.Bundle{Kind: "essay"}); err == nil {
		t.Fatal("Save should reject an unknown kind")
	}
}

func TestFileStore_LoadDefaultsKind(t *testing.T) {
	dir := t.TempDir()
	raw := `{"topic": "Python Programming Basics", "flashcards": [{"id": 1, "front": "f", "back": "b", "category": "Loops"}]}`
	if err := os.WriteFile(filepath.Join(dir, FlashcardsFile), []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	b, desc := NewFileStore(dir, nil).Load(content.KindFlashcards)
	if desc != nil {
		t.Fatalf("Load: %v", desc)
	}
	if b.Kind != content.KindFlashcards {
		t.Errorf("Kind = %q, want flashcards", b.Kind)
	}
}

func TestFileStore_LoadLegacyFile(t *testing.T) {
	dir := t.TempDir()
	raw := `{
  "topic": "Python Programming Basics",
  "total_questions": 1,
  "questions": [{"id": 1, "question": "q", "options": ["a", "b", "c", "d"], "correct_answer": "a", "explanation": "e"}],
  "generated_at": "2025-05-04T13:22:41.123456",
  "generated_by": "EduChain with Google Gemini"
}`
	if err := os.WriteFile(filepath.Join(dir, MCQFile), []byte(raw), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	b, desc := NewFileStore(dir, nil).Load(content.KindMCQ)
	if desc != nil {
		t.Fatalf("Load: %v", desc)
	}
	want := time.Date(2025, 5, 4, 13, 22, 41, 123456000, time.Local)
	if !b.GeneratedAt.Equal(want) {
		t.Errorf("GeneratedAt = %v, want %v", b.GeneratedAt, want)
	}
	if b.GeneratedBy != content.ProvenancePrimary {
		t.Errorf("GeneratedBy = %q, want PRIMARY", b.GeneratedBy)
	}
	if len(b.Questions) != 1 {
		t.Errorf("got %d questions", len(b.Questions))
	}
}

func TestFileStore_LoadWrongKind(t *testing.T) {
	dir := t.TempDir()
	// An MCQ bundle sitting in the flashcards slot.
	if err := Save(testBundle(), filepath.Join(dir, FlashcardsFile)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	_, desc := NewFileStore(dir, nil).Load(content.KindFlashcards)
	if desc == nil || desc.Reason != ReasonMalformed {
		t.Fatalf("desc = %+v, want malformed", desc)
	}
}

func TestFileStore_Missing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs")
	s := NewFileStore(dir, nil)

	missing, err := s.Missing()
	if err != nil {
		t.Fatalf("Missing: %v", err)
	}
	if len(missing) != 3 {
		t.Fatalf("got %d missing files, want 3: %v", len(missing), missing)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Missing should create the directory: %v", err)
	}

	if err := s.Save(testBundle()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	missing, err = s.Missing()
	if err != nil {
		t.Fatalf("Missing: %v", err)
	}
	if len(missing) != 2 {
		t.Errorf("got %d missing files after saving MCQs, want 2", len(missing))
	}
	for _, m := range missing {
		if strings.HasSuffix(m, MCQFile) {
			t.Errorf("%s reported missing after save", m)
		}
	}
}
