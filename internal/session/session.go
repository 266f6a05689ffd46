// package session implements the line-synchronization state machine: an
// ordered set of lyric lines, the growing list of assigned timestamps,
// and a cursor marking the next line awaiting a stamp.
package session

import (
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/lrcsync/internal/lrc"
	"github.com/desertthunder/lrcsync/internal/player"
	"github.com/desertthunder/lrcsync/internal/shared"
)

// Session holds the sync state for one lyric/audio pairing.
//
// Invariants: len(stamps) never exceeds len(lines); cursor stays in
// [0, len(lines)] and equals len(stamps) except transiently after Rewind,
// when the next Advance overwrites stamps[cursor] instead of appending.
type Session struct {
	transport  player.Transport
	lyricsPath string
	lines      []string
	stamps     []string
	cursor     int
}

// New creates an empty session bound to a playback transport.
func New(t player.Transport) *Session {
	return &Session{transport: t}
}

// Clean trims raw input lines and discards the blank ones.
func Clean(raw []string) []string {
	cleaned := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// Load replaces the lyric lines with the cleaned form of raw, clearing all
// timestamps and resetting the cursor. Fails with [shared.ErrEmptyFile]
// when nothing survives cleaning, leaving prior state intact.
func (s *Session) Load(raw []string) error {
	cleaned := Clean(raw)
	if len(cleaned) == 0 {
		return shared.ErrEmptyFile
	}

	s.lines = cleaned
	s.stamps = nil
	s.cursor = 0
	return nil
}

// LoadFile reads a UTF-8 lyric file, one line per lyric line, and loads it.
func (s *Session) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read lyrics file: %w", err)
	}

	if err := s.Load(strings.Split(string(data), "\n")); err != nil {
		return fmt.Errorf("%w: %s", err, path)
	}

	s.lyricsPath = path
	return nil
}

// Ready reports whether both an audio asset and lyrics are loaded.
func (s *Session) Ready() bool {
	return s.transport != nil && s.transport.Asset() != nil && len(s.lines) > 0
}

// Advance stamps the current line with the transport's playback position
// and moves the cursor forward.
func (s *Session) Advance() error {
	return s.AdvanceAt(s.transport.Position())
}

// AdvanceAt stamps the line at the cursor with posMillis and increments
// the cursor. After a Rewind the existing stamp is overwritten in place,
// so the timestamp sequence never grows past one entry per line.
//
// Fails with [shared.ErrNotReady] before audio and lyrics are loaded, and
// with [shared.ErrAlreadyComplete] once every line is stamped; neither
// mutates state.
func (s *Session) AdvanceAt(posMillis int) error {
	if !s.Ready() {
		return shared.ErrNotReady
	}
	if s.cursor >= len(s.lines) {
		return shared.ErrAlreadyComplete
	}

	tag := lrc.FormatTimestamp(posMillis)
	if s.cursor < len(s.stamps) {
		s.stamps[s.cursor] = tag
	} else {
		s.stamps = append(s.stamps, tag)
	}
	s.cursor++
	return nil
}

// Rewind moves the cursor back one line without discarding its stamp; a
// later Advance overwrites it. No-op at the first line.
func (s *Session) Rewind() error {
	if !s.Ready() {
		return shared.ErrNotReady
	}
	if s.cursor > 0 {
		s.cursor--
	}
	return nil
}

// Undo removes the most recent timestamp, clamping the cursor down to the
// new sequence length. No-op when no timestamps exist.
func (s *Session) Undo() {
	if len(s.stamps) == 0 {
		return
	}
	s.stamps = s.stamps[:len(s.stamps)-1]
	if s.cursor > len(s.stamps) {
		s.cursor = len(s.stamps)
	}
}

// Export produces one record per lyric line in order. Lines never visited
// borrow the last recorded timestamp, or [00:00.00] when none exist, so
// partial exports stay well-formed; records for unvisited lines are
// approximate.
func (s *Session) Export() []lrc.Record {
	records := make([]lrc.Record, 0, len(s.lines))
	for i, line := range s.lines {
		var tag string
		switch {
		case i < len(s.stamps):
			tag = s.stamps[i]
		case len(s.stamps) > 0:
			tag = s.stamps[len(s.stamps)-1]
		default:
			tag = lrc.FormatTimestamp(0)
		}
		records = append(records, lrc.Record{Tag: tag, Text: line})
	}
	return records
}

// Save exports the session to path. The in-memory state is untouched on
// failure so the user can retry.
func (s *Session) Save(path string) error {
	if !s.Ready() {
		return shared.ErrNotReady
	}
	return lrc.WriteFile(path, s.Export())
}

// Complete reports whether every line has been stamped.
func (s *Session) Complete() bool {
	return len(s.lines) > 0 && s.cursor >= len(s.lines)
}

// Cursor returns the index of the next line awaiting a timestamp.
func (s *Session) Cursor() int { return s.cursor }

// Lines returns the loaded lyric lines.
func (s *Session) Lines() []string { return s.lines }

// LyricsPath returns the path the lyrics were loaded from, if any.
func (s *Session) LyricsPath() string { return s.lyricsPath }

// Stamped returns how many timestamps have been recorded.
func (s *Session) Stamped() int { return len(s.stamps) }

// StampFor returns the timestamp tag recorded for line i.
func (s *Session) StampFor(i int) (string, bool) {
	if i < 0 || i >= len(s.stamps) {
		return "", false
	}
	return s.stamps[i], true
}

// CurrentLine returns the line at the cursor, empty once complete.
func (s *Session) CurrentLine() string {
	if s.cursor < len(s.lines) {
		return s.lines[s.cursor]
	}
	return ""
}

// NextLine returns the line after the cursor, empty when none remains.
func (s *Session) NextLine() string {
	if s.cursor+1 < len(s.lines) {
		return s.lines[s.cursor+1]
	}
	return ""
}
