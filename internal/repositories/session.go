package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/lrcsync/internal/models"
	"github.com/desertthunder/lrcsync/internal/shared"
)

// SessionRepository implements [models.Repository] for [models.SessionRecord] persistence.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session record into the database with generated ID and sequence
func (r *SessionRepository) Create(record *models.SessionRecord) error {
	sequence, err := NextSequence(r.db, "sessions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}
	record.SetSequence(sequence)

	id := shared.GenerateID()
	record.SetID(id)

	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO sessions (
			id, sequence, audio_path, lyrics_path, output_path,
			line_count, stamped_count, duration_ms, created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		record.AudioPath(),
		record.LyricsPath(),
		record.OutputPath(),
		record.LineCount(),
		record.StampedCount(),
		record.DurationMs(),
		record.CreatedAt(),
		record.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// Get retrieves a session record by ID, excluding soft-deleted records
func (r *SessionRepository) Get(id string) (*models.SessionRecord, error) {
	query := `
		SELECT id, sequence, audio_path, lyrics_path, output_path,
			line_count, stamped_count, duration_ms, created_at, updated_at, deleted_at
		FROM sessions
		WHERE id = ? AND deleted_at IS NULL
	`

	record, err := scanSession(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return record, nil
}

// Update modifies an existing session record in the database
func (r *SessionRepository) Update(record *models.SessionRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	record.SetUpdatedAt(now)

	query := `
		UPDATE sessions
		SET output_path = ?, stamped_count = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, record.OutputPath(), record.StampedCount(), now, record.ID())
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session not found or already deleted: %s", record.ID())
	}

	return nil
}

// Delete soft-deletes a session record by ID
func (r *SessionRepository) Delete(id string) error {
	query := `
		UPDATE sessions
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves session records newest-first. Supported criteria:
// "audio_path" (exact match) and "limit" (int).
func (r *SessionRepository) List(criteria map[string]any) ([]*models.SessionRecord, error) {
	query := `
		SELECT id, sequence, audio_path, lyrics_path, output_path,
			line_count, stamped_count, duration_ms, created_at, updated_at, deleted_at
		FROM sessions
		WHERE deleted_at IS NULL
	`
	var args []any

	if audioPath, ok := criteria["audio_path"].(string); ok && audioPath != "" {
		query += " AND audio_path = ?"
		args = append(args, audioPath)
	}

	query += " ORDER BY created_at DESC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var records []*models.SessionRecord
	for rows.Next() {
		record, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return records, nil
}

// scanner covers both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(s scanner) (*models.SessionRecord, error) {
	var (
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
		deletedAt    sql.NullTime
	)

	if err := s.Scan(&id, &sequence, &audioPath, &lyricsPath, &outputPath,
		&lineCount, &stampedCount, &durationMs, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	record := models.NewSessionRecord(sequence, audioPath, lyricsPath, outputPath, lineCount, stampedCount, durationMs)
	record.SetID(id)
	record.SetCreatedAt(createdAt)
	record.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		record.SetDeletedAt(&deletedAt.Time)
	}

	return record, nil
}
