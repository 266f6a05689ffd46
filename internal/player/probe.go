package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"

	"github.com/desertthunder/lrcsync/internal/shared"
)

// Probe reads container metadata for an audio file. WAV files are decoded
// with go-audio/wav for duration, sample rate, channel count, and bit
// depth. There is no mp3 probe, so .mp3 assets report a zero Duration.
func Probe(path string) (*AssetInfo, error) {
	ext := strings.ToLower(filepath.Ext(path))
	asset := &AssetInfo{Path: path, Format: strings.TrimPrefix(ext, ".")}

	if ext != ".wav" {
		return asset, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, path)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: %s is not a valid WAV file", shared.ErrUnsupportedFormat, filepath.Base(path))
	}

	asset.SampleRate = int(decoder.SampleRate)
	asset.Channels = int(decoder.NumChans)
	asset.BitDepth = int(decoder.BitDepth)

	if duration, err := decoder.Duration(); err == nil {
		asset.Duration = duration
	}

	return asset, nil
}
