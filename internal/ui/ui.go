package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/lrcsync/internal/lrc"
	"github.com/desertthunder/lrcsync/internal/models"
	"github.com/desertthunder/lrcsync/internal/player"
	"github.com/desertthunder/lrcsync/internal/repositories"
	"github.com/desertthunder/lrcsync/internal/session"
	"github.com/desertthunder/lrcsync/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SyncView ViewState = iota
	ConfirmSaveView
	SavedView
)

const previewHeight = 9

// tickMsg is the display refresh pulse; its handler only reads the
// transport position and never mutates the session.
type tickMsg time.Time

type savedMsg struct {
	path string
	err  error
}

// Model represents the sync screen state.
type Model struct {
	view      ViewState
	session   *session.Session
	transport player.Transport

	store        *repositories.SessionRepository
	logger       *log.Logger
	outputDir    string
	fallbackName string
	tick         time.Duration

	width    int
	height   int
	pos      int
	notice   string
	err      error
	savedTo  string
	progress progress.Model
	help     help.Model
	keys     keyMap
}

// ModelOpts carries the optional dependencies for the sync screen.
type ModelOpts struct {
	Store        *repositories.SessionRepository
	Logger       *log.Logger
	OutputDir    string
	FallbackName string
	Tick         time.Duration
}

// NewModel creates a sync screen over an already-prepared session and transport.
func NewModel(sess *session.Session, transport player.Transport, opts ModelOpts) *Model {
	if opts.Tick <= 0 {
		opts.Tick = 100 * time.Millisecond
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Model{
		view:         SyncView,
		session:      sess,
		transport:    transport,
		store:        opts.Store,
		logger:       opts.Logger,
		outputDir:    opts.OutputDir,
		fallbackName: opts.FallbackName,
		tick:         opts.Tick,
		progress:     progress.New(progress.WithDefaultGradient()),
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init starts the display refresh tick.
func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 8
		return m, nil

	case tickMsg:
		m.pos = m.transport.Position()
		return m, m.tickCmd()

	case tea.KeyMsg:
		switch m.view {
		case SyncView:
			return m.handleSyncKeys(msg)
		case ConfirmSaveView:
			return m.handleConfirmKeys(msg)
		case SavedView:
			return m.handleSavedKeys(msg)
		}

	case savedMsg:
		if msg.err != nil {
			// Session state is untouched; the user can fix the
			// problem and retry from the sync view.
			m.err = msg.err
			m.view = SyncView
			return m, nil
		}
		m.err = nil
		m.savedTo = msg.path
		m.view = SavedView
		return m, nil
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SyncView:
		return m.renderSync()
	case ConfirmSaveView:
		return m.renderConfirm()
	case SavedView:
		return m.renderSaved()
	default:
		return ""
	}
}

func (m *Model) handleSyncKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.play):
		// Explicit play always restarts from zero so the first tap
		// lines up with the start of the track.
		m.transport.Stop()
		m.transport.Play()

	case key.Matches(msg, m.keys.pause):
		if !m.transport.Playing() {
			m.transport.Play()
		} else {
			m.transport.PauseToggle()
		}

	case key.Matches(msg, m.keys.stop):
		m.transport.Stop()

	case key.Matches(msg, m.keys.advance):
		if err := m.session.Advance(); err != nil {
			m.report(err)
			return m, nil
		}
		if m.session.Complete() {
			m.transport.Stop()
			m.notice = "All lines stamped. Save with ctrl+s."
		}

	case key.Matches(msg, m.keys.rewind):
		if err := m.session.Rewind(); err != nil {
			m.report(err)
		}

	case key.Matches(msg, m.keys.undo):
		m.session.Undo()

	case key.Matches(msg, m.keys.save):
		if !m.session.Ready() {
			m.report(shared.ErrNotReady)
			return m, nil
		}
		if m.session.Stamped() == 0 {
			m.view = ConfirmSaveView
			return m, nil
		}
		return m, m.saveCmd()
	}

	return m, nil
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		m.view = SyncView
		return m, m.saveCmd()
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.quit):
		m.view = SyncView
	}
	return m, nil
}

func (m *Model) handleSavedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.resume):
		m.view = SyncView
	}
	return m, nil
}

// report converts a session error into a footer notice. Every error here
// is recoverable; none ends the program.
func (m *Model) report(err error) {
	switch {
	case errors.Is(err, shared.ErrAlreadyComplete):
		m.notice = "All lines are already stamped."
	case errors.Is(err, shared.ErrNotReady):
		m.err = err
	default:
		m.err = err
	}
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// OutputPath returns where the next save lands: the audio base name with
// the .lrc extension, in the configured output directory.
func (m *Model) OutputPath() string {
	var audioPath string
	if asset := m.transport.Asset(); asset != nil {
		audioPath = asset.Path
	}
	name := lrc.DefaultFilename(audioPath, m.fallbackName)
	if m.outputDir == "" {
		return name
	}
	return filepath.Join(m.outputDir, name)
}

func (m *Model) saveCmd() tea.Cmd {
	path := m.OutputPath()
	return func() tea.Msg {
		if err := m.session.Save(path); err != nil {
			return savedMsg{err: err}
		}
		m.recordHistory(path)
		return savedMsg{path: path}
	}
}

// recordHistory persists a SessionRecord for the export. History is best
// effort: a storage failure is logged, not surfaced as a save failure.
func (m *Model) recordHistory(path string) {
	if m.store == nil {
		return
	}

	var audioPath string
	var durationMs int
	if asset := m.transport.Asset(); asset != nil {
		audioPath = asset.Path
		durationMs = int(asset.Duration / time.Millisecond)
	}

	record := models.NewSessionRecord(0, audioPath, m.session.LyricsPath(), path,
		len(m.session.Lines()), m.session.Stamped(), durationMs)
	if err := m.store.Create(record); err != nil {
		m.logger.Error("failed to record session history", "error", err)
	}
}

func (m *Model) renderSync() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("lrcsync"))
	b.WriteString("\n\n")

	b.WriteString(styles.dim.Render("Now:  "))
	b.WriteString(styles.current.Render(m.session.CurrentLine()))
	b.WriteString("\n")
	b.WriteString(styles.dim.Render("Next: "))
	b.WriteString(m.session.NextLine())
	b.WriteString("\n\n")

	b.WriteString(m.renderPreview())
	b.WriteString("\n")

	total := len(m.session.Lines())
	if total > 0 {
		b.WriteString(m.progress.ViewAs(float64(m.session.Stamped()) / float64(total)))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// renderPreview shows a window of lyric lines with their recorded tags,
// following the cursor the way the original list preview did.
func (m *Model) renderPreview() string {
	lines := m.session.Lines()
	cursor := m.session.Cursor()

	start := cursor - previewHeight/2
	if start > len(lines)-previewHeight {
		start = len(lines) - previewHeight
	}
	if start < 0 {
		start = 0
	}
	end := start + previewHeight
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		tag, ok := m.session.StampFor(i)
		if !ok {
			tag = "[-]"
		}

		var row string
		if i == cursor {
			row = styles.current.Render(fmt.Sprintf("> %s %s", tag, lines[i]))
		} else {
			row = fmt.Sprintf("  %s %s", styles.dim.Render(tag), lines[i])
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderStatus() string {
	pos := strings.Trim(lrc.FormatTimestamp(m.pos), "[]")
	total := len(m.session.Lines())
	stamped := m.session.Stamped()
	if stamped > total {
		stamped = total
	}

	parts := []string{
		fmt.Sprintf("Pos: %s", pos),
		fmt.Sprintf("Lines: %d/%d", stamped, total),
	}

	if asset := m.transport.Asset(); asset != nil {
		label := asset.Name()
		if asset.Duration > 0 {
			label = fmt.Sprintf("%s (%s)", label, strings.Trim(lrc.FormatTimestamp(int(asset.Duration/time.Millisecond)), "[]"))
		}
		parts = append(parts, fmt.Sprintf("Audio: %s", label))
	}
	if m.session.LyricsPath() != "" {
		parts = append(parts, fmt.Sprintf("Lyrics: %s", filepath.Base(m.session.LyricsPath())))
	}
	if m.transport.Paused() {
		parts = append(parts, styles.warn.Render("PAUSED"))
	}

	status := strings.Join(parts, " | ")

	if m.err != nil {
		status += "\n" + styles.err.Render(m.err.Error())
	} else if m.notice != "" {
		status += "\n" + styles.ok.Render(m.notice)
	}

	return status
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render("Save without timestamps?")
	info := fmt.Sprintf("\nNo timestamps have been recorded yet.\nEvery line will be tagged %s in %s.\n", lrc.FormatTimestamp(0), m.OutputPath())

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderSaved() string {
	title := styles.ok.Render("✓ Saved")
	info := fmt.Sprintf("\nWrote %d lines to %s\n", len(m.session.Lines()), m.savedTo)

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.resume, m.keys.quit})

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}
