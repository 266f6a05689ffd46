// package player provides the playback transport consumed by the sync
// session: play/pause/stop controls and a millisecond position readout.
//
// No audio is decoded or rendered here. [Clock] mimics the position
// reporting of a real mixer (milliseconds since the last play, frozen
// while paused) so a decoder-backed player can be swapped in behind
// [Transport] later without touching the session.
package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/lrcsync/internal/shared"
)

// SupportedExtensions lists the audio file extensions accepted by Load.
var SupportedExtensions = []string{".mp3", ".wav"}

// Transport is the playback position provider contract.
type Transport interface {
	Load(path string) error // Load makes path the active asset
	Play()                  // Play restarts playback from zero; no-op when nothing is loaded
	PauseToggle()           // PauseToggle freezes or resumes the position; no-op unless playing
	Stop()                  // Stop halts playback and clears the paused flag
	Playing() bool          // Playing reports whether the transport has started and not stopped
	Paused() bool           // Paused reports whether the position is frozen
	Position() int          // Position returns milliseconds since the last Play, zero when stopped
	Asset() *AssetInfo      // Asset describes the active asset, nil when nothing is loaded
}

// AssetInfo describes a loaded audio asset.
type AssetInfo struct {
	Path       string
	Format     string        // lowercased extension without the dot
	Duration   time.Duration // zero when unknown (mp3 has no probe)
	SampleRate int
	Channels   int
	BitDepth   int
}

// Name returns the asset's base filename for display.
func (a *AssetInfo) Name() string {
	return filepath.Base(a.Path)
}

// Clock is a wall-clock [Transport]. Playback position is the elapsed
// time since Play, shifted forward by any paused spans.
type Clock struct {
	asset    *AssetInfo
	playing  bool
	paused   bool
	epoch    time.Time
	pausedAt time.Time
	now      func() time.Time
}

var _ Transport = (*Clock)(nil)

// NewClock creates a Clock with nothing loaded.
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// Load validates path and makes it the active asset. Fails with
// [shared.ErrNotFound] when the file does not exist and
// [shared.ErrUnsupportedFormat] when the extension is not supported.
// Any in-flight playback is halted and the paused flag cleared.
func (c *Clock) Load(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supported(ext) {
		return fmt.Errorf("%w: %s", shared.ErrUnsupportedFormat, ext)
	}

	asset, err := Probe(path)
	if err != nil {
		return err
	}

	c.asset = asset
	c.playing = false
	c.paused = false
	return nil
}

// Play starts playback from the beginning of the asset. A transport that
// was stopped or already playing restarts from zero.
func (c *Clock) Play() {
	if c.asset == nil {
		return
	}
	c.playing = true
	c.paused = false
	c.epoch = c.now()
}

// PauseToggle flips between paused and playing. Resuming shifts the play
// epoch forward by the paused span so Position stays frozen during pause.
func (c *Clock) PauseToggle() {
	if c.asset == nil || !c.playing {
		return
	}
	if c.paused {
		c.epoch = c.epoch.Add(c.now().Sub(c.pausedAt))
		c.paused = false
	} else {
		c.pausedAt = c.now()
		c.paused = true
	}
}

// Stop halts playback; the next Play starts from zero.
func (c *Clock) Stop() {
	c.playing = false
	c.paused = false
}

// Playing reports whether the transport has started and not stopped.
// It stays true while paused.
func (c *Clock) Playing() bool { return c.playing }

// Paused reports whether the position is currently frozen.
func (c *Clock) Paused() bool { return c.paused }

// Position returns milliseconds elapsed since the last Play, frozen while
// paused, zero when stopped.
func (c *Clock) Position() int {
	if !c.playing {
		return 0
	}
	ref := c.now()
	if c.paused {
		ref = c.pausedAt
	}
	ms := int(ref.Sub(c.epoch) / time.Millisecond)
	if ms < 0 {
		return 0
	}
	return ms
}

// Asset returns the active asset, nil when nothing is loaded.
func (c *Clock) Asset() *AssetInfo { return c.asset }

func supported(ext string) bool {
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}
