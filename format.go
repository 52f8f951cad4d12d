package audioprobe

import (
	"io"

	"github.com/simonhull/audioprobe/internal/types"
)

// Format is an alias to types.Format.
// Re-exported from internal/types to keep the public API flat.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatFLAC    = types.FormatFLAC
	FormatMP3     = types.FormatMP3
	FormatM4A     = types.FormatM4A
	FormatM4B     = types.FormatM4B
	FormatOgg     = types.FormatOgg
	FormatOpus    = types.FormatOpus
	FormatWAV     = types.FormatWAV
	FormatAIFF    = types.FormatAIFF
)

// FormatForExtension maps a lowercase file extension (".mp3") to the format
// whose parser should make the primary extraction attempt.
//
// The lookup is closed: any extension not listed - including the empty
// string - maps to FormatUnknown, which routes the file through magic-byte
// detection instead.
func FormatForExtension(ext string) Format {
	switch ext {
	case ".mp3":
		return FormatMP3
	case ".m4a", ".mp4":
		return FormatM4A
	case ".flac":
		return FormatFLAC
	case ".ogg":
		return FormatOgg
	case ".wav":
		return FormatWAV
	default:
		return FormatUnknown
	}
}

// DetectFormat is a wrapper around types.DetectFormat.
// Maintains the public API while delegating to the internal implementation.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}
