package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/lrcsync/internal/models"
)

// sessionRow is the JSON projection of a [models.SessionRecord].
type sessionRow struct {
	ID        string `json:"id"`
	Sequence  int    `json:"sequence"`
	Audio     string `json:"audio"`
	Lyrics    string `json:"lyrics"`
	Output    string `json:"output"`
	Lines     int    `json:"lines"`
	Stamped   int    `json:"stamped"`
	CreatedAt string `json:"created_at"`
}

// History lists previously exported sync sessions, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	store, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	criteria := map[string]any{"limit": int(cmd.Int("limit"))}
	if audio := cmd.String("audio"); audio != "" {
		criteria["audio_path"] = audio
	}

	records, err := store.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if cmd.Bool("json") {
		rows := make([]sessionRow, 0, len(records))
		for _, rec := range records {
			rows = append(rows, toRow(rec))
		}
		return r.writeJSON(rows, true)
	}

	if len(records) == 0 {
		return r.writePlain("No sessions recorded yet. Run 'lrcsync sync' and save an export.\n")
	}

	for _, rec := range records {
		row := toRow(rec)
		r.writePlain("#%d %s\n", row.Sequence, row.CreatedAt)
		r.writePlain("  audio:  %s\n", filepath.Base(row.Audio))
		r.writePlain("  lyrics: %s\n", filepath.Base(row.Lyrics))
		r.writePlain("  output: %s (%d/%d lines stamped)\n", row.Output, row.Stamped, row.Lines)
	}

	return nil
}

func toRow(rec *models.SessionRecord) sessionRow {
	return sessionRow{
		ID:        rec.ID(),
		Sequence:  rec.Sequence(),
		Audio:     rec.AudioPath(),
		Lyrics:    rec.LyricsPath(),
		Output:    rec.OutputPath(),
		Lines:     rec.LineCount(),
		Stamped:   rec.StampedCount(),
		CreatedAt: rec.CreatedAt().Format("2006-01-02 15:04"),
	}
}
