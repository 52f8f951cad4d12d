package types

import (
	"fmt"
	"time"
)

// AudioInfo represents technical audio properties.
//
// AudioInfo provides format-agnostic access to the structural description of
// an audio stream: duration, sample rate, channel count, and bitrate. Zero
// values mean "not found" for every field except Duration, where a genuine
// zero-length stream is possible; HasDuration keeps that distinction.
type AudioInfo struct {
	Codec       string
	Container   string
	Duration    time.Duration
	SampleRate  int
	BitDepth    int
	Channels    int
	Bitrate     int
	HasDuration bool
	Lossless    bool
	VBR         bool
}

// Empty reports whether the parse found no usable structural information.
//
// A parser can complete without error and still yield nothing useful (for
// example an MP4 container with no movie header). Callers use Empty to
// decide whether a fallback parse attempt is warranted.
func (a AudioInfo) Empty() bool {
	return !a.HasDuration && a.SampleRate == 0 && a.Channels == 0 && a.Bitrate == 0
}

// String returns a human-readable summary of the audio info.
// Example output: "FLAC 44.1kHz 16-bit stereo 1411kbps".
func (a AudioInfo) String() string {
	parts := make([]string, 0, 5)

	if a.Codec != "" {
		parts = append(parts, a.Codec)
	}
	if a.SampleRate > 0 {
		parts = append(parts, fmt.Sprintf("%.1fkHz", float64(a.SampleRate)/1000))
	}
	if a.BitDepth > 0 {
		parts = append(parts, fmt.Sprintf("%d-bit", a.BitDepth))
	}
	if ch := channelDescription(a.Channels); ch != "" {
		parts = append(parts, ch)
	}
	if a.Bitrate > 0 {
		quality := fmt.Sprintf("%dkbps", a.Bitrate/1000)
		if a.VBR {
			quality += " VBR"
		}
		parts = append(parts, quality)
	}

	return join(parts, " ")
}

// channelDescription returns a short channel layout description.
func channelDescription(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}

// join concatenates strings with a separator, skipping empty strings.
func join(parts []string, sep string) string {
	var result string
	for _, part := range parts {
		if part == "" {
			continue
		}
		if result != "" {
			result += sep
		}
		result += part
	}
	return result
}
