package ogg

import (
	"encoding/binary"
	"fmt"

	"github.com/simonhull/audioprobe/internal/types"
)

// parseVorbisIdentification parses the Vorbis identification header
// (packet type 0x01), which carries sample rate, channel count, and the
// nominal bitrate.
func parseVorbisIdentification(data []byte, file *types.File) error {
	if len(data) < 30 {
		return fmt.Errorf("identification header too short: %d bytes", len(data))
	}

	// Packet type 0x01 = identification
	if data[0] != 0x01 {
		return fmt.Errorf("not an identification header (type 0x%02x)", data[0])
	}

	if string(data[1:7]) != codecVorbis {
		return fmt.Errorf("invalid vorbis magic: %q", string(data[1:7]))
	}

	vorbisVersion := binary.LittleEndian.Uint32(data[7:11])
	if vorbisVersion != 0 {
		return fmt.Errorf("unsupported Vorbis version: %d", vorbisVersion)
	}

	// Audio properties are all little-endian
	channels := data[11]
	sampleRate := binary.LittleEndian.Uint32(data[12:16])
	bitrateNominal := binary.LittleEndian.Uint32(data[20:24])

	file.Audio.Codec = "Vorbis"
	file.Audio.Container = containerOgg
	file.Audio.SampleRate = int(sampleRate)
	file.Audio.Channels = int(channels)
	file.Audio.Bitrate = int(bitrateNominal)
	file.Audio.Lossless = false
	file.Audio.VBR = true

	return nil
}
