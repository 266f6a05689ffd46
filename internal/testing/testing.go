// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"

	"github.com/desertthunder/lrcsync/internal/player"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// FakeTransport is a test double for [player.Transport] with a scripted
// position readout.
type FakeTransport struct {
	Info    *player.AssetInfo
	LoadErr error
	Pos     int

	IsPlaying bool
	IsPaused  bool
}

var _ player.Transport = (*FakeTransport)(nil)

// NewFakeTransport returns a FakeTransport with an asset already loaded.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{Info: &player.AssetInfo{Path: "song.mp3", Format: "mp3"}}
}

func (f *FakeTransport) Load(path string) error {
	if f.LoadErr != nil {
		return f.LoadErr
	}
	f.Info = &player.AssetInfo{Path: path}
	f.IsPlaying = false
	f.IsPaused = false
	return nil
}

func (f *FakeTransport) Play() {
	if f.Info == nil {
		return
	}
	f.IsPlaying = true
	f.IsPaused = false
}

func (f *FakeTransport) PauseToggle() {
	if f.Info == nil || !f.IsPlaying {
		return
	}
	f.IsPaused = !f.IsPaused
}

func (f *FakeTransport) Stop() {
	f.IsPlaying = false
	f.IsPaused = false
}

func (f *FakeTransport) Playing() bool { return f.IsPlaying }
func (f *FakeTransport) Paused() bool { return f.IsPaused }

func (f *FakeTransport) Position() int {
	if !f.IsPlaying {
		return 0
	}
	return f.Pos
}

func (f *FakeTransport) Asset() *player.AssetInfo { return f.Info }
