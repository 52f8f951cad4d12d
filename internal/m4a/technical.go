package m4a

import (
	"time"

	"github.com/simonhull/audioprobe/internal/binary"
	"github.com/simonhull/audioprobe/internal/types"
)

// parseTechnicalInfo extracts duration, bitrate, sample rate, channels, and
// codec. Missing atoms are not fatal - technical info is best-effort, and a
// container with no usable track simply yields an empty AudioInfo.
func parseTechnicalInfo(sr *binary.SafeReader, moovAtom *Atom, file *types.File) {
	// mvhd (movie header) carries the duration
	mvhdAtom, err := findAtom(sr, moovAtom.DataOffset(), moovAtom.DataOffset()+int64(moovAtom.DataSize()), "mvhd")
	if err != nil {
		return
	}

	if err := parseMvhd(sr, mvhdAtom, file); err != nil {
		return
	}

	// Codec, sample rate, and channels live in the sample description:
	// moov -> trak -> mdia -> minf -> stbl -> stsd
	atom := moovAtom
	for _, name := range []string{"trak", "mdia", "minf", "stbl", "stsd"} {
		atom, err = findAtom(sr, atom.DataOffset(), atom.DataOffset()+int64(atom.DataSize()), name)
		if err != nil {
			return
		}
	}

	if err := parseStsd(sr, atom, file); err != nil {
		return
	}

	// Estimate bitrate from duration and file size
	if file.Audio.Duration > 0 && file.Size > 0 {
		durationSec := file.Audio.Duration.Seconds()
		if durationSec > 0 {
			file.Audio.Bitrate = int((float64(file.Size) * 8) / durationSec)
		}
	}
}

// parseMvhd parses the movie header atom for duration.
func parseMvhd(sr *binary.SafeReader, mvhdAtom *Atom, file *types.File) error {
	offset := mvhdAtom.DataOffset()

	version, err := binary.Read[uint8](sr, offset, "mvhd version")
	if err != nil {
		return err
	}
	offset++

	// Skip flags (3 bytes)
	offset += 3

	var timescale uint32
	var duration uint64

	if version == 1 {
		timescale, duration, err = parseMvhdVersion1(sr, offset)
	} else {
		timescale, duration, err = parseMvhdVersion0(sr, offset)
	}

	if err != nil {
		return err
	}

	if timescale > 0 {
		durationNs := (int64(duration) * 1_000_000_000) / int64(timescale)
		file.Audio.Duration = time.Duration(durationNs)
		file.Audio.HasDuration = true
	}

	return nil
}

// parseMvhdVersion0 parses 32-bit mvhd (version 0).
func parseMvhdVersion0(sr *binary.SafeReader, offset int64) (timescale uint32, duration uint64, err error) {
	// Skip creation time (4 bytes) and modification time (4 bytes)
	offset += 8

	timescale, err = binary.Read[uint32](sr, offset, "mvhd timescale")
	if err != nil {
		return 0, 0, err
	}
	offset += 4

	duration32, err := binary.Read[uint32](sr, offset, "mvhd duration")
	if err != nil {
		return 0, 0, err
	}

	return timescale, uint64(duration32), nil
}

// parseMvhdVersion1 parses 64-bit mvhd (version 1).
func parseMvhdVersion1(sr *binary.SafeReader, offset int64) (timescale uint32, duration uint64, err error) {
	// Skip creation time (8 bytes) and modification time (8 bytes)
	offset += 16

	timescale, err = binary.Read[uint32](sr, offset, "mvhd timescale")
	if err != nil {
		return 0, 0, err
	}
	offset += 4

	duration, err = binary.Read[uint64](sr, offset, "mvhd duration")
	if err != nil {
		return 0, 0, err
	}

	return timescale, duration, nil
}

// parseStsd parses the sample description atom for codec, sample rate, and
// channels.
func parseStsd(sr *binary.SafeReader, stsdAtom *Atom, file *types.File) error {
	offset := stsdAtom.DataOffset()

	// Skip version (1 byte) + flags (3 bytes)
	offset += 4

	numEntries, err := binary.Read[uint32](sr, offset, "stsd entry count")
	if err != nil {
		return err
	}
	offset += 4

	if numEntries == 0 {
		return nil
	}

	// First entry: [4 bytes size] [4 bytes format] ...
	_, err = binary.Read[uint32](sr, offset, "stsd entry size")
	if err != nil {
		return err
	}
	offset += 4

	formatBytes := make([]byte, 4)
	if err := sr.ReadAt(formatBytes, offset, "stsd format"); err != nil {
		return err
	}
	offset += 4

	file.Audio.Codec = string(formatBytes)

	// Skip reserved (6 bytes) and data reference index (2 bytes)
	offset += 8

	// Skip version (2 bytes), revision level (2 bytes), and vendor (4 bytes)
	offset += 8

	channels, err := binary.Read[uint16](sr, offset, "channels")
	if err != nil {
		return err
	}
	file.Audio.Channels = int(channels)
	offset += 2

	// Skip sample size (2 bytes), compression ID (2 bytes), packet size (2 bytes)
	offset += 6

	// Sample rate is 16.16 fixed point; high 16 bits are the integer part
	sampleRateFixed, err := binary.Read[uint32](sr, offset, "sample rate")
	if err != nil {
		return err
	}
	file.Audio.SampleRate = int(sampleRateFixed >> 16)

	return nil
}
