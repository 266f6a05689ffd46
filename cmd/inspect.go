package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/lrcsync/internal/lrc"
	"github.com/desertthunder/lrcsync/internal/shared"
)

// Inspect parses an existing timed-lyrics file and prints its records.
func (r *Runner) Inspect(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path to a .lrc file", shared.ErrMissingArgument)
	}

	records, err := lrc.ParseFile(path)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, true)
	}

	first, err := lrc.ParseTimestamp(records[0].Tag)
	if err != nil {
		return err
	}
	last, err := lrc.ParseTimestamp(records[len(records)-1].Tag)
	if err != nil {
		return err
	}

	r.writePlain("%s: %d lines, %s to %s\n", path, len(records), records[0].Tag, records[len(records)-1].Tag)
	r.writePlain("span: %s\n\n", lrc.FormatTimestamp(last-first))

	for _, rec := range records {
		r.writePlain("%s %s\n", rec.Tag, rec.Text)
	}

	return nil
}
