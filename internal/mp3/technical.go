package mp3

import (
	"encoding/binary"
	"fmt"
	"time"

	binutil "github.com/simonhull/audioprobe/internal/binary"
	"github.com/simonhull/audioprobe/internal/types"
)

// MP3 bitrate table (MPEG1 Layer III) in kbps.
var bitrateTable = []int{
	0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0,
}

// MP3 sample rate table (MPEG1) in Hz.
var sampleRateTable = []int{
	44100, 48000, 32000, 0,
}

// parseTechnicalInfo extracts bitrate, sample rate, channels, and duration
// from MP3 frames.
//
// Returns *types.HeaderNotFoundError if no valid frame sync exists anywhere
// after the ID3 tag. That condition is surfaced distinctly so callers can
// report a degraded result instead of a failure.
func parseTechnicalInfo(sr *binutil.SafeReader, tagSize int64, fileSize int64, file *types.File) error {
	frameOffset := tagSize

	// Search for MP3 frame sync (11 bits set)
	for frameOffset < fileSize-4 {
		header, err := findMP3FrameAt(sr, frameOffset)
		if err == nil {
			bitrate, sampleRate, channels := parseMP3FrameHeader(header)
			if bitrate > 0 && sampleRate > 0 {
				file.Audio.Bitrate = bitrate
				file.Audio.SampleRate = sampleRate
				file.Audio.Channels = channels
				file.Audio.Codec = "MP3"

				duration, vbr := parseVBRHeader(sr, frameOffset, sampleRate)
				if vbr {
					file.Audio.Duration = duration
					file.Audio.VBR = true
				} else {
					// CBR - estimate from bitrate and audio data size
					file.Audio.Duration = estimateCBRDuration(bitrate, fileSize, tagSize)
					file.Audio.VBR = false
				}
				file.Audio.HasDuration = true

				return nil
			}
		}

		frameOffset++
	}

	return &types.HeaderNotFoundError{Path: sr.Path()}
}

// findMP3FrameAt attempts to read an MP3 frame header at the given offset.
func findMP3FrameAt(sr *binutil.SafeReader, offset int64) (uint32, error) {
	buf := make([]byte, 4)
	if err := sr.ReadAt(buf, offset, "MP3 frame header"); err != nil {
		return 0, err
	}

	header := binary.BigEndian.Uint32(buf)

	// Frame sync: 11 bits set (0xFFE00000)
	if header&0xFFE00000 != 0xFFE00000 {
		return 0, fmt.Errorf("invalid frame sync")
	}

	version := (header >> 19) & 0x3
	layer := (header >> 17) & 0x3

	// MPEG1 (11) or MPEG2 (10)
	if version != 3 && version != 2 {
		return 0, fmt.Errorf("unsupported MPEG version")
	}

	// Layer III (01)
	if layer != 1 {
		return 0, fmt.Errorf("unsupported layer")
	}

	return header, nil
}

// parseMP3FrameHeader extracts bitrate, sample rate, and channels from a
// frame header.
func parseMP3FrameHeader(header uint32) (bitrate, sampleRate, channels int) {
	bitrateIdx := (header >> 12) & 0xF
	if bitrateIdx < uint32(len(bitrateTable)) {
		bitrate = bitrateTable[bitrateIdx] * 1000 // Convert to bps
	}

	sampleRateIdx := (header >> 10) & 0x3
	if sampleRateIdx < uint32(len(sampleRateTable)) {
		sampleRate = sampleRateTable[sampleRateIdx]
	}

	channelMode := (header >> 6) & 0x3
	if channelMode == 3 {
		channels = 1 // Mono
	} else {
		channels = 2 // Stereo, Joint Stereo, Dual Channel
	}

	return
}

// parseVBRHeader checks for Xing/VBRI headers and calculates an accurate
// duration for variable bitrate files.
func parseVBRHeader(sr *binutil.SafeReader, frameOffset int64, sampleRate int) (time.Duration, bool) {
	// Xing/Info header sits 36 bytes after the frame header for MPEG1
	xingOffset := frameOffset + 36
	buf := make([]byte, 120)
	if err := sr.ReadAt(buf, xingOffset, "VBR header"); err != nil {
		return 0, false
	}

	isXing := string(buf[0:4]) == "Xing" || string(buf[0:4]) == "Info"
	if !isXing {
		// VBRI headers carry the frame count at offset 14
		if string(buf[0:4]) == "VBRI" {
			numFrames := binary.BigEndian.Uint32(buf[14:18])
			return calculateDurationFromFrames(numFrames, sampleRate), true
		}
		return 0, false
	}

	flags := binary.BigEndian.Uint32(buf[4:8])

	// Frames field is present if bit 0 is set
	if flags&0x0001 != 0 {
		numFrames := binary.BigEndian.Uint32(buf[8:12])
		return calculateDurationFromFrames(numFrames, sampleRate), true
	}

	return 0, false
}

// calculateDurationFromFrames calculates duration from number of frames.
func calculateDurationFromFrames(numFrames uint32, sampleRate int) time.Duration {
	// Each MPEG1 Layer III frame = 1152 samples
	const samplesPerFrame = 1152
	totalSamples := uint64(numFrames) * samplesPerFrame
	durationSeconds := float64(totalSamples) / float64(sampleRate)
	return time.Duration(durationSeconds * float64(time.Second))
}

// estimateCBRDuration estimates duration for constant bitrate files.
func estimateCBRDuration(bitrate int, fileSize, tagSize int64) time.Duration {
	if bitrate == 0 {
		return 0
	}

	// Audio data size excludes the ID3 tag
	audioSize := fileSize - tagSize

	durationSeconds := float64(audioSize*8) / float64(bitrate)
	return time.Duration(durationSeconds * float64(time.Second))
}
