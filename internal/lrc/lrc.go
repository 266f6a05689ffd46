// package lrc implements the timed-lyrics text format: one
// "[MM:SS.CC] <text>" record per line, in lyric order.
package lrc

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/lrcsync/internal/shared"
)

// Extension is the file extension for timed-lyrics exports.
const Extension = ".lrc"

// Record pairs a formatted timestamp tag with a trimmed lyric line.
type Record struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// FormatTimestamp renders a millisecond offset as an "[MM:SS.CC]" tag.
//
// Negative values are clamped to zero. Minutes are not wrapped to hours:
// offsets of 100 minutes or more render with as many minute digits as
// needed.
func FormatTimestamp(ms int) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	hundredths := (ms % 1000) / 10
	return fmt.Sprintf("[%02d:%02d.%02d]", minutes, seconds, hundredths)
}

// ParseTimestamp converts an "[MM:SS.CC]" tag back to milliseconds.
// Hundredths carry 10ms resolution, so Parse(Format(ms)) truncates ms to
// the nearest lower multiple of 10.
func ParseTimestamp(tag string) (int, error) {
	inner := strings.TrimSpace(tag)
	if !strings.HasPrefix(inner, "[") || !strings.HasSuffix(inner, "]") {
		return 0, fmt.Errorf("%w: timestamp %q is not bracketed", shared.ErrInvalidInput, tag)
	}
	inner = inner[1 : len(inner)-1]

	colon := strings.IndexByte(inner, ':')
	dot := strings.LastIndexByte(inner, '.')
	if colon < 0 || dot < colon {
		return 0, fmt.Errorf("%w: timestamp %q is malformed", shared.ErrInvalidInput, tag)
	}

	minutes, err := strconv.Atoi(inner[:colon])
	if err != nil || minutes < 0 {
		return 0, fmt.Errorf("%w: bad minute field in %q", shared.ErrInvalidInput, tag)
	}
	seconds, err := strconv.Atoi(inner[colon+1 : dot])
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, fmt.Errorf("%w: bad second field in %q", shared.ErrInvalidInput, tag)
	}
	hundredths, err := strconv.Atoi(inner[dot+1:])
	if err != nil || hundredths < 0 || hundredths > 99 {
		return 0, fmt.Errorf("%w: bad hundredth field in %q", shared.ErrInvalidInput, tag)
	}

	return (minutes*60+seconds)*1000 + hundredths*10, nil
}

// Render serializes records to the on-disk format. No header metadata
// block is emitted.
func Render(records []Record) []byte {
	var buf bytes.Buffer
	for _, r := range records {
		buf.WriteString(r.Tag)
		buf.WriteByte(' ')
		buf.WriteString(r.Text)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// WriteFile renders records and writes them to path as UTF-8.
func WriteFile(path string, records []Record) error {
	if err := os.WriteFile(path, Render(records), 0644); err != nil {
		return fmt.Errorf("failed to write lyrics file: %w", err)
	}
	return nil
}

// DefaultFilename suggests an output filename: the audio file's base name
// with the extension swapped for .lrc, or fallback when no audio is loaded.
func DefaultFilename(audioPath, fallback string) string {
	if fallback == "" {
		fallback = "output"
	}
	if audioPath == "" {
		return fallback + Extension
	}
	base := filepath.Base(audioPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + Extension
}

// ParseFile reads a timed-lyrics file back into records. Lines without a
// leading tag are skipped; a file yielding no records is an error.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lyrics file: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "[") {
			continue
		}
		end := strings.IndexByte(line, ']')
		if end < 0 {
			continue
		}
		tag := line[:end+1]
		if _, err := ParseTimestamp(tag); err != nil {
			continue
		}
		records = append(records, Record{Tag: tag, Text: strings.TrimSpace(line[end+1:])})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lyrics file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrEmptyFile, path)
	}

	return records, nil
}
