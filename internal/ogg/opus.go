package ogg

import (
	"fmt"

	"github.com/simonhull/audioprobe/internal/types"
)

// parseOpusHead parses the OpusHead identification header.
//
// Opus always outputs at 48kHz regardless of the original input sample rate,
// so that rate is reported unconditionally.
func parseOpusHead(data []byte, file *types.File) error {
	if len(data) < 19 {
		return fmt.Errorf("OpusHead packet too short: %d bytes (need at least 19)", len(data))
	}

	if string(data[0:8]) != "OpusHead" {
		return fmt.Errorf("invalid OpusHead magic: %q", string(data[0:8]))
	}

	version := data[8]
	if version != 1 {
		return fmt.Errorf("unsupported Opus version: %d (only version 1 is supported)", version)
	}

	channels := data[9]

	file.Audio.Codec = "Opus"
	file.Audio.Container = containerOgg
	file.Audio.SampleRate = 48000
	file.Audio.Channels = int(channels)
	file.Audio.Lossless = false
	file.Audio.VBR = true

	return nil
}
