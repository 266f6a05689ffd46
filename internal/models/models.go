// package models defines the data model for the lyric sync tool
package models

import (
	"fmt"
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// SessionRecord is one exported sync session: which audio and lyric files
// were aligned, where the .lrc landed, and how much of it was stamped by
// hand versus filled at export time.
type SessionRecord struct {
	id           string
	sequence     int
	audioPath    string
	lyricsPath   string
	outputPath   string
	lineCount    int
	stampedCount int
	durationMs   int
	createdAt    time.Time
	updatedAt    time.Time
	deletedAt    *time.Time
}

// NewSessionRecord creates a SessionRecord with creation timestamps set to now.
func NewSessionRecord(sequence int, audioPath, lyricsPath, outputPath string, lineCount, stampedCount, durationMs int) *SessionRecord {
	now := time.Now()
	return &SessionRecord{
		sequence:     sequence,
		audioPath:    audioPath,
		lyricsPath:   lyricsPath,
		outputPath:   outputPath,
		lineCount:    lineCount,
		stampedCount: stampedCount,
		durationMs:   durationMs,
		createdAt:    now,
		updatedAt:    now,
	}
}

func (s *SessionRecord) ID() string { return s.id }
func (s *SessionRecord) Sequence() int { return s.sequence }
func (s *SessionRecord) AudioPath() string { return s.audioPath }
func (s *SessionRecord) LyricsPath() string { return s.lyricsPath }
func (s *SessionRecord) OutputPath() string { return s.outputPath }
func (s *SessionRecord) LineCount() int { return s.lineCount }
func (s *SessionRecord) StampedCount() int { return s.stampedCount }
func (s *SessionRecord) DurationMs() int { return s.durationMs }
func (s *SessionRecord) CreatedAt() time.Time { return s.createdAt }
func (s *SessionRecord) UpdatedAt() time.Time { return s.updatedAt }
func (s *SessionRecord) DeletedAt() *time.Time { return s.deletedAt }

func (s *SessionRecord) SetID(id string) { s.id = id }
func (s *SessionRecord) SetSequence(seq int) { s.sequence = seq }
func (s *SessionRecord) SetCreatedAt(t time.Time) { s.createdAt = t }
func (s *SessionRecord) SetUpdatedAt(t time.Time) { s.updatedAt = t }
func (s *SessionRecord) SetDeletedAt(t *time.Time) { s.deletedAt = t }
func (s *SessionRecord) SetOutputPath(path string) { s.outputPath = path }
func (s *SessionRecord) SetStampedCount(stamped int) { s.stampedCount = stamped }

// Validate checks the record's data before persistence.
func (s *SessionRecord) Validate() error {
	if s.id == "" {
		return fmt.Errorf("session record requires an id")
	}
	if s.outputPath == "" {
		return fmt.Errorf("session record requires an output path")
	}
	if s.lineCount <= 0 {
		return fmt.Errorf("session record requires a positive line count")
	}
	if s.stampedCount < 0 || s.stampedCount > s.lineCount {
		return fmt.Errorf("stamped count %d out of range for %d lines", s.stampedCount, s.lineCount)
	}
	return nil
}

var _ Model = (*SessionRecord)(nil)
