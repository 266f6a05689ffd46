package player

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/desertthunder/lrcsync/internal/shared"
)

// writeTestWav generates a small mono WAV fixture and returns its path.
func writeTestWav(t *testing.T, samples int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, 44100, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 44100},
		Data:           make([]int, samples),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("failed to write fixture samples: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("failed to finalize fixture: %v", err)
	}

	return path
}

// writeTestMp3 writes a placeholder .mp3 file; the clock never decodes it.
func writeTestMp3(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "song.mp3")
	if err := os.WriteFile(path, []byte("ID3"), 0644); err != nil {
		t.Fatalf("failed to create fixture: %v", err)
	}
	return path
}

func TestClockLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		c := NewClock()
		err := c.Load(filepath.Join(t.TempDir(), "nope.mp3"))
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "song.ogg")
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("failed to create fixture: %v", err)
		}

		c := NewClock()
		err := c.Load(path)
		if !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
		if c.Asset() != nil {
			t.Error("failed load must not set an asset")
		}
	})

	t.Run("mp3 loads with unknown duration", func(t *testing.T) {
		c := NewClock()
		if err := c.Load(writeTestMp3(t)); err != nil {
			t.Fatalf("load failed: %v", err)
		}

		asset := c.Asset()
		if asset == nil {
			t.Fatal("expected an asset after load")
		}
		if asset.Format != "mp3" {
			t.Errorf("format = %s, want mp3", asset.Format)
		}
		if asset.Duration != 0 {
			t.Errorf("duration = %v, want 0 (unknown)", asset.Duration)
		}
	})

	t.Run("load clears paused playback", func(t *testing.T) {
		c := NewClock()
		if err := c.Load(writeTestMp3(t)); err != nil {
			t.Fatalf("load failed: %v", err)
		}
		c.Play()
		c.PauseToggle()

		if err := c.Load(writeTestMp3(t)); err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if c.Playing() || c.Paused() {
			t.Error("loading a new asset should halt the transport")
		}
	})
}

func TestClockTransport(t *testing.T) {
	newTestClock := func(t *testing.T) (*Clock, *time.Time) {
		t.Helper()

		now := time.Unix(1000, 0)
		c := NewClock()
		c.now = func() time.Time { return now }
		if err := c.Load(writeTestMp3(t)); err != nil {
			t.Fatalf("load failed: %v", err)
		}
		return c, &now
	}

	t.Run("position tracks elapsed play time", func(t *testing.T) {
		c, now := newTestClock(t)

		if c.Position() != 0 {
			t.Errorf("position before play = %d, want 0", c.Position())
		}

		c.Play()
		*now = now.Add(1500 * time.Millisecond)
		if got := c.Position(); got != 1500 {
			t.Errorf("position = %d, want 1500", got)
		}
	})

	t.Run("pause freezes position, resume continues", func(t *testing.T) {
		c, now := newTestClock(t)
		c.Play()

		*now = now.Add(2 * time.Second)
		c.PauseToggle()
		if !c.Paused() {
			t.Fatal("expected transport to be paused")
		}

		*now = now.Add(10 * time.Second)
		if got := c.Position(); got != 2000 {
			t.Errorf("paused position = %d, want 2000", got)
		}

		c.PauseToggle()
		*now = now.Add(500 * time.Millisecond)
		if got := c.Position(); got != 2500 {
			t.Errorf("resumed position = %d, want 2500", got)
		}
	})

	t.Run("play restarts from zero", func(t *testing.T) {
		c, now := newTestClock(t)
		c.Play()
		*now = now.Add(5 * time.Second)

		c.Play()
		if got := c.Position(); got != 0 {
			t.Errorf("restarted position = %d, want 0", got)
		}
	})

	t.Run("stop zeroes position and clears pause", func(t *testing.T) {
		c, now := newTestClock(t)
		c.Play()
		*now = now.Add(time.Second)
		c.PauseToggle()

		c.Stop()
		if c.Playing() || c.Paused() {
			t.Error("stop should clear playing and paused")
		}
		if c.Position() != 0 {
			t.Errorf("stopped position = %d, want 0", c.Position())
		}
	})

	t.Run("controls are no-ops with nothing loaded", func(t *testing.T) {
		c := NewClock()
		c.Play()
		c.PauseToggle()
		if c.Playing() || c.Paused() || c.Position() != 0 {
			t.Error("transport must stay idle with no asset")
		}
	})
}

func TestProbe(t *testing.T) {
	t.Run("wav metadata", func(t *testing.T) {
		// 4410 samples at 44.1kHz is 100ms.
		path := writeTestWav(t, 4410)

		asset, err := Probe(path)
		if err != nil {
			t.Fatalf("probe failed: %v", err)
		}

		if asset.Format != "wav" {
			t.Errorf("format = %s, want wav", asset.Format)
		}
		if asset.SampleRate != 44100 {
			t.Errorf("sample rate = %d, want 44100", asset.SampleRate)
		}
		if asset.Channels != 1 {
			t.Errorf("channels = %d, want 1", asset.Channels)
		}
		if asset.BitDepth != 16 {
			t.Errorf("bit depth = %d, want 16", asset.BitDepth)
		}
		if asset.Duration != 100*time.Millisecond {
			t.Errorf("duration = %v, want 100ms", asset.Duration)
		}
	})

	t.Run("invalid wav container", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fake.wav")
		if err := os.WriteFile(path, []byte("not riff data"), 0644); err != nil {
			t.Fatalf("failed to create fixture: %v", err)
		}

		_, err := Probe(path)
		if !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})
}
