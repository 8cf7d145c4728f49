// Package cache persists generated bundles as flat JSON files, one file
// per content kind, and reads them back for the server.
//
// Writes are best-effort: a failure is reported to the caller and logged
// but never aborts a run. Reads never fail with a Go error; a missing or
// malformed file is described by an ErrorDescriptor that the server can
// hand straight to its client.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/HendryAvila/educhain-mcp/internal/content"
)

// Well-known cache file names, one per kind.
const (
	MCQFile        = "python_mcqs.json"
	LessonPlanFile = "python_lesson_plan.json"
	FlashcardsFile = "python_flashcards.json"
)

// SuggestGenerate is attached to not-found descriptors.
const SuggestGenerate = "Run 'educhain-mcp generate' first to create the required files."

// FileName returns the cache file name for kind, or "" for an unknown kind.
func FileName(kind content.Kind) string {
	switch kind {
	case content.KindMCQ:
		return MCQFile
	case content.KindLessonPlan:
		return LessonPlanFile
	case content.KindFlashcards:
		return FlashcardsFile
	}
	return ""
}

// PathFor returns the cache file path for kind under dir.
func PathFor(dir string, kind content.Kind) string {
	return filepath.Join(dir, FileName(kind))
}

// --- Error descriptor ---

// Reason classifies a failed load.
type Reason string

const (
	ReasonNotFound   Reason = "not_found"
	ReasonMalformed  Reason = "malformed"
	ReasonUnreadable Reason = "unreadable"
)

// ErrorDescriptor is the structured result of a failed load. It
// marshals to {"error": ..., "suggestion"|"details": ...}.
type ErrorDescriptor struct {
	Message    string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
	Details    string `json:"details,omitempty"`
	Reason     Reason `json:"-"`
}

func (e *ErrorDescriptor) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// JSON renders the descriptor as indented JSON.
func (e *ErrorDescriptor) JSON() string {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, e.Message)
	}
	return string(data)
}

// --- Flat-file operations ---

// Save writes b to path as indented JSON, creating parent directories.
// The file is replaced atomically so readers never see a partial write.
func Save(b content.Bundle, path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s bundle: %w", b.Kind, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Load reads the bundle at path. On failure it returns a descriptor
// instead: not found, malformed JSON, or an unreadable file.
func Load(path string) (*content.Bundle, *ErrorDescriptor) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ErrorDescriptor{
				Message:    "File not found: " + path,
				Suggestion: SuggestGenerate,
				Reason:     ReasonNotFound,
			}
		}
		return nil, &ErrorDescriptor{
			Message: "Cannot read " + path,
			Details: err.Error(),
			Reason:  ReasonUnreadable,
		}
	}

	var b content.Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, &ErrorDescriptor{
			Message: "Invalid JSON format in " + path,
			Details: err.Error(),
			Reason:  ReasonMalformed,
		}
	}
	return &b, nil
}

// --- Store ---

// Store is the kind-addressed view of the cache used by the server and
// the batch generator. Abstracted for testability.
type Store interface {
	Save(b content.Bundle) error
	Load(kind content.Kind) (*content.Bundle, *ErrorDescriptor)
	Missing() ([]string, error)
	Dir() string
}

// FileStore implements Store on a directory of flat JSON files.
type FileStore struct {
	dir string
	log *zap.Logger
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string, log *zap.Logger) *FileStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileStore{dir: dir, log: log.Named("cache")}
}

// Dir returns the directory the store reads and writes.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes b to the file for its kind. The error is logged as well as
// returned; callers treat it as non-fatal.
func (s *FileStore) Save(b content.Bundle) error {
	if err := content.ValidateKind(b.Kind); err != nil {
		s.log.Error("refusing to save bundle", zap.Error(err))
		return err
	}
	path := PathFor(s.dir, b.Kind)
	if err := Save(b, path); err != nil {
		s.log.Error("saving bundle failed", zap.String("path", path), zap.Error(err))
		return err
	}
	s.log.Info("saved bundle",
		zap.String("path", path),
		zap.String("generated_by", string(b.GeneratedBy)),
		zap.Int("items", b.ItemCount()),
	)
	return nil
}

// Load reads the cached bundle for kind. A file that decodes but carries
// no kind is attributed to the kind it was loaded as.
func (s *FileStore) Load(kind content.Kind) (*content.Bundle, *ErrorDescriptor) {
	path := PathFor(s.dir, kind)
	b, desc := Load(path)
	if desc != nil {
		s.log.Debug("cache miss", zap.String("path", path), zap.String("reason", string(desc.Reason)))
		return nil, desc
	}
	if b.Kind == "" {
		b.Kind = kind
	}
	if b.Kind != kind {
		return nil, &ErrorDescriptor{
			Message: "Invalid JSON format in " + path,
			Details: fmt.Sprintf("file holds %q content, want %q", b.Kind, kind),
			Reason:  ReasonMalformed,
		}
	}
	return b, nil
}

// Missing ensures the cache directory exists and returns the well-known
// files that are absent from it.
func (s *FileStore) Missing() ([]string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	var missing []string
	for _, kind := range content.Kinds {
		path := PathFor(s.dir, kind)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, path)
		}
	}
	return missing, nil
}
