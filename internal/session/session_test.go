package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/lrcsync/internal/shared"
	tu "github.com/desertthunder/lrcsync/internal/testing"
)

func newReadySession(t *testing.T, lines ...string) (*Session, *tu.FakeTransport) {
	t.Helper()

	transport := tu.NewFakeTransport()
	sess := New(transport)
	if err := sess.Load(lines); err != nil {
		t.Fatalf("failed to load lyrics: %v", err)
	}
	return sess, transport
}

func TestClean(t *testing.T) {
	got := Clean([]string{"Hello", "", "World", "  "})
	if len(got) != 2 || got[0] != "Hello" || got[1] != "World" {
		t.Errorf("Clean() = %v, want [Hello World]", got)
	}
}

func TestLoad(t *testing.T) {
	t.Run("resets cursor and stamps", func(t *testing.T) {
		sess, _ := newReadySession(t, "one", "two")
		if err := sess.AdvanceAt(1000); err != nil {
			t.Fatalf("advance failed: %v", err)
		}

		if err := sess.Load([]string{"alpha", "beta", "gamma"}); err != nil {
			t.Fatalf("reload failed: %v", err)
		}

		if sess.Cursor() != 0 {
			t.Errorf("cursor = %d, want 0", sess.Cursor())
		}
		if sess.Stamped() != 0 {
			t.Errorf("stamped = %d, want 0", sess.Stamped())
		}
		if got := len(sess.Export()); got != 3 {
			t.Errorf("export produced %d records, want 3", got)
		}
	})

	t.Run("empty input fails and keeps prior state", func(t *testing.T) {
		sess, _ := newReadySession(t, "one", "two")

		err := sess.Load([]string{"", "   ", "\t"})
		if !errors.Is(err, shared.ErrEmptyFile) {
			t.Fatalf("expected ErrEmptyFile, got %v", err)
		}
		if len(sess.Lines()) != 2 {
			t.Errorf("prior lines should survive a failed load, got %v", sess.Lines())
		}
	})

	t.Run("LoadFile reads and cleans", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lyrics.txt")
		if err := os.WriteFile(path, []byte("Hello\n\nWorld\n  \n"), 0644); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		sess := New(tu.NewFakeTransport())
		if err := sess.LoadFile(path); err != nil {
			t.Fatalf("LoadFile failed: %v", err)
		}

		if len(sess.Lines()) != 2 {
			t.Errorf("expected 2 lines, got %v", sess.Lines())
		}
		if sess.LyricsPath() != path {
			t.Errorf("lyrics path = %s, want %s", sess.LyricsPath(), path)
		}
	})
}

// TestSyncScenario walks the full tap-along flow: stamp two lines, step
// back and restamp, undo, then export a partial session.
func TestSyncScenario(t *testing.T) {
	sess, _ := newReadySession(t, "Hello", "", "World", "  ")

	if len(sess.Lines()) != 2 {
		t.Fatalf("cleaned lines = %v, want [Hello World]", sess.Lines())
	}

	if err := sess.AdvanceAt(1500); err != nil {
		t.Fatalf("first advance failed: %v", err)
	}
	if tag, _ := sess.StampFor(0); tag != "[00:01.50]" {
		t.Errorf("stamp 0 = %s, want [00:01.50]", tag)
	}
	if sess.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", sess.Cursor())
	}

	// Export before the second line is visited: it borrows the last stamp.
	records := sess.Export()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].Tag != "[00:01.50]" || records[1].Text != "World" {
		t.Errorf("unsynced line exported as %+v, want [00:01.50] World", records[1])
	}

	if err := sess.AdvanceAt(4000); err != nil {
		t.Fatalf("second advance failed: %v", err)
	}
	if !sess.Complete() {
		t.Error("session should be complete after stamping both lines")
	}

	got := sess.Export()
	if got[0].Tag != "[00:01.50]" || got[0].Text != "Hello" {
		t.Errorf("record 0 = %+v", got[0])
	}
	if got[1].Tag != "[00:04.00]" || got[1].Text != "World" {
		t.Errorf("record 1 = %+v", got[1])
	}

	// Rewind leaves the stamp in place; the next advance overwrites it.
	if err := sess.Rewind(); err != nil {
		t.Fatalf("rewind failed: %v", err)
	}
	if sess.Cursor() != 1 {
		t.Errorf("cursor after rewind = %d, want 1", sess.Cursor())
	}
	if sess.Stamped() != 2 {
		t.Errorf("stamps after rewind = %d, want 2", sess.Stamped())
	}

	if err := sess.AdvanceAt(5000); err != nil {
		t.Fatalf("overwrite advance failed: %v", err)
	}
	if sess.Stamped() != 2 {
		t.Errorf("overwrite grew the sequence to %d stamps", sess.Stamped())
	}
	if tag, _ := sess.StampFor(1); tag != "[00:05.00]" {
		t.Errorf("stamp 1 = %s, want [00:05.00]", tag)
	}

	sess.Undo()
	if sess.Stamped() != 1 {
		t.Errorf("stamps after undo = %d, want 1", sess.Stamped())
	}
	if sess.Cursor() != 1 {
		t.Errorf("cursor after undo = %d, want 1", sess.Cursor())
	}
}

func TestAdvance(t *testing.T) {
	t.Run("fails without lyrics", func(t *testing.T) {
		sess := New(tu.NewFakeTransport())

		err := sess.AdvanceAt(1000)
		if !errors.Is(err, shared.ErrNotReady) {
			t.Fatalf("expected ErrNotReady, got %v", err)
		}
		if sess.Cursor() != 0 || sess.Stamped() != 0 {
			t.Error("failed advance must not mutate state")
		}
	})

	t.Run("fails without audio", func(t *testing.T) {
		transport := &tu.FakeTransport{}
		sess := New(transport)
		if err := sess.Load([]string{"one"}); err != nil {
			t.Fatalf("load failed: %v", err)
		}

		if err := sess.AdvanceAt(1000); !errors.Is(err, shared.ErrNotReady) {
			t.Fatalf("expected ErrNotReady, got %v", err)
		}
	})

	t.Run("reports completion as informational", func(t *testing.T) {
		sess, _ := newReadySession(t, "only")
		if err := sess.AdvanceAt(100); err != nil {
			t.Fatalf("advance failed: %v", err)
		}

		err := sess.AdvanceAt(200)
		if !errors.Is(err, shared.ErrAlreadyComplete) {
			t.Fatalf("expected ErrAlreadyComplete, got %v", err)
		}
		if tag, _ := sess.StampFor(0); tag != "[00:00.10]" {
			t.Errorf("completed advance must not restamp, got %s", tag)
		}
	})

	t.Run("reads position from the transport", func(t *testing.T) {
		sess, transport := newReadySession(t, "one", "two")
		transport.Play()
		transport.Pos = 1500

		if err := sess.Advance(); err != nil {
			t.Fatalf("advance failed: %v", err)
		}
		if tag, _ := sess.StampFor(0); tag != "[00:01.50]" {
			t.Errorf("stamp = %s, want [00:01.50]", tag)
		}
	})
}

func TestRewind(t *testing.T) {
	t.Run("no-op at the first line", func(t *testing.T) {
		sess, _ := newReadySession(t, "one", "two")
		if err := sess.Rewind(); err != nil {
			t.Fatalf("rewind failed: %v", err)
		}
		if sess.Cursor() != 0 {
			t.Errorf("cursor = %d, want 0", sess.Cursor())
		}
	})

	t.Run("fails when not ready", func(t *testing.T) {
		sess := New(tu.NewFakeTransport())
		if err := sess.Rewind(); !errors.Is(err, shared.ErrNotReady) {
			t.Fatalf("expected ErrNotReady, got %v", err)
		}
	})
}

func TestUndo(t *testing.T) {
	t.Run("no-op on empty sequence", func(t *testing.T) {
		sess, _ := newReadySession(t, "one", "two")

		// Repeated undo never drives anything negative.
		for range 3 {
			sess.Undo()
		}
		if sess.Cursor() != 0 || sess.Stamped() != 0 {
			t.Errorf("cursor=%d stamps=%d after undos on empty session", sess.Cursor(), sess.Stamped())
		}
	})

	t.Run("clamps cursor to sequence length", func(t *testing.T) {
		sess, _ := newReadySession(t, "one", "two", "three")
		for i, ms := range []int{1000, 2000, 3000} {
			if err := sess.AdvanceAt(ms); err != nil {
				t.Fatalf("advance %d failed: %v", i, err)
			}
		}

		sess.Undo()
		if sess.Cursor() != 2 || sess.Stamped() != 2 {
			t.Errorf("cursor=%d stamps=%d, want 2/2", sess.Cursor(), sess.Stamped())
		}

		sess.Undo()
		sess.Undo()
		sess.Undo()
		if sess.Cursor() != 0 || sess.Stamped() != 0 {
			t.Errorf("cursor=%d stamps=%d, want 0/0", sess.Cursor(), sess.Stamped())
		}
	})
}

func TestExport(t *testing.T) {
	t.Run("zero stamps fill with zero tag", func(t *testing.T) {
		sess, _ := newReadySession(t, "one", "two")

		records := sess.Export()
		for i, rec := range records {
			if rec.Tag != "[00:00.00]" {
				t.Errorf("record %d tag = %s, want [00:00.00]", i, rec.Tag)
			}
		}
	})

	t.Run("Save writes the export", func(t *testing.T) {
		sess, _ := newReadySession(t, "Hello", "World")
		if err := sess.AdvanceAt(1500); err != nil {
			t.Fatalf("advance failed: %v", err)
		}
		if err := sess.AdvanceAt(4000); err != nil {
			t.Fatalf("advance failed: %v", err)
		}

		path := filepath.Join(t.TempDir(), "out.lrc")
		if err := sess.Save(path); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read export: %v", err)
		}
		want := "[00:01.50] Hello\n[00:04.00] World\n"
		if string(data) != want {
			t.Errorf("export = %q, want %q", string(data), want)
		}
	})

	t.Run("Save failure leaves state unchanged", func(t *testing.T) {
		sess, _ := newReadySession(t, "Hello", "World")
		if err := sess.AdvanceAt(1500); err != nil {
			t.Fatalf("advance failed: %v", err)
		}

		err := sess.Save(filepath.Join(t.TempDir(), "missing", "out.lrc"))
		if err == nil {
			t.Fatal("expected save into a missing directory to fail")
		}
		if !strings.Contains(err.Error(), "failed to write lyrics file") {
			t.Errorf("unexpected error: %v", err)
		}
		if sess.Cursor() != 1 || sess.Stamped() != 1 {
			t.Error("failed save must not mutate session state")
		}
	})
}
