package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/lrcsync/internal/player"
	"github.com/desertthunder/lrcsync/internal/session"
	"github.com/desertthunder/lrcsync/internal/shared"
	"github.com/desertthunder/lrcsync/internal/ui"
)

// Sync loads the audio and lyric files and launches the interactive sync screen.
func (r *Runner) Sync(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	transport := player.NewClock()
	if err := transport.Load(cmd.String("audio")); err != nil {
		return err
	}

	sess := session.New(transport)
	if err := sess.LoadFile(cmd.String("lyrics")); err != nil {
		return err
	}

	r.logger.Info("session prepared",
		"audio", transport.Asset().Name(),
		"lines", len(sess.Lines()))

	// History is optional; the sync screen works without a database.
	var opts ui.ModelOpts
	if !cmd.Bool("no-history") {
		store, closeStore, err := r.openStore()
		if err != nil {
			r.logger.Warn("history disabled", "error", err)
		} else {
			defer closeStore()
			opts.Store = store
		}
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/lrcsync-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	opts.Logger = fileLogger
	opts.OutputDir = r.config.Output.Dir
	if dir := cmd.String("output-dir"); dir != "" {
		opts.OutputDir = dir
	}
	opts.FallbackName = r.config.Output.FallbackName
	opts.Tick = time.Duration(r.config.Sync.TickMs) * time.Millisecond

	model := ui.NewModel(sess, transport, opts)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
