// Package flac implements FLAC STREAMINFO parsing for structural audio info.
package flac

import (
	"fmt"
	"io"
	"time"

	"github.com/simonhull/audioprobe/internal/binary"
	"github.com/simonhull/audioprobe/internal/registry"
	"github.com/simonhull/audioprobe/internal/types"
)

// Metadata block types
const (
	blockTypeStreamInfo = 0
)

// parser implements the registry.FormatParser interface for FLAC files.
type parser struct{}

// Parse parses a FLAC file and extracts structural info.
//
// Only the STREAMINFO block is decoded; Vorbis comments, pictures, cue
// sheets, and the rest of the metadata blocks are skipped.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (*types.File, error) {
	sr := binary.NewSafeReader(r, size, path)

	// Verify FLAC magic bytes ("fLaC")
	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "FLAC magic bytes"); err != nil {
		return nil, fmt.Errorf("read FLAC magic: %w", err)
	}
	if string(magic) != "fLaC" {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Offset: 0,
			Reason: "invalid FLAC magic bytes",
		}
	}

	file := &types.File{
		Path:   path,
		Format: types.FormatFLAC,
		Size:   size,
		Audio:  types.AudioInfo{},
	}

	// Walk metadata blocks
	offset := int64(4) // After "fLaC"
	for offset < size {
		header, err := binary.Read[uint32](sr, offset, "metadata block header")
		if err != nil {
			file.Warnings = append(file.Warnings, types.Warning{
				Stage:   "container",
				Message: fmt.Sprintf("failed to read metadata block header at offset %d: %v", offset, err),
				Offset:  offset,
			})
			break
		}

		isLast := (header >> 31) == 1
		blockType := uint8((header >> 24) & 0x7F)
		blockLength := int64(header & 0x00FFFFFF)

		offset += 4 // Move past header

		if blockType == blockTypeStreamInfo {
			if err := parseStreamInfo(sr, offset, blockLength, file); err != nil {
				file.Warnings = append(file.Warnings, types.Warning{
					Stage:   "technical",
					Message: fmt.Sprintf("failed to parse STREAMINFO: %v", err),
					Offset:  offset,
				})
			}
		}

		offset += blockLength

		if isLast {
			break
		}
	}

	file.Audio.Container = "FLAC"
	file.Audio.Codec = "FLAC"
	file.Audio.Lossless = true

	return file, nil
}

// parseStreamInfo extracts audio info from the STREAMINFO block.
func parseStreamInfo(sr *binary.SafeReader, offset, blockLength int64, file *types.File) error {
	// STREAMINFO is exactly 34 bytes
	if blockLength != 34 {
		return fmt.Errorf("invalid STREAMINFO size: %d (expected 34)", blockLength)
	}

	data := make([]byte, 34)
	if err := sr.ReadAt(data, offset, "STREAMINFO block"); err != nil {
		return err
	}

	// Bytes 10-17 bit-pack: sample rate (20 bits), channels (3 bits),
	// bits per sample (5 bits), total samples (36 bits)
	packed := uint64(data[10])<<56 | uint64(data[11])<<48 | uint64(data[12])<<40 | uint64(data[13])<<32 |
		uint64(data[14])<<24 | uint64(data[15])<<16 | uint64(data[16])<<8 | uint64(data[17])

	sampleRate := (packed >> 44) & 0xFFFFF         // Top 20 bits
	channels := ((packed >> 41) & 0x7) + 1         // Next 3 bits, stored as (channels - 1)
	bitsPerSample := ((packed >> 36) & 0x1F) + 1   // Next 5 bits, stored as (bits - 1)
	totalSamples := packed & 0xFFFFFFFFF           // Bottom 36 bits

	if sampleRate > 0 {
		durationSeconds := float64(totalSamples) / float64(sampleRate)
		file.Audio.Duration = time.Duration(durationSeconds * float64(time.Second))
		file.Audio.HasDuration = true
	}

	file.Audio.SampleRate = int(sampleRate)
	file.Audio.Channels = int(channels)
	file.Audio.BitDepth = int(bitsPerSample)

	// FLAC has no nominal bitrate; estimate from file size and duration
	if file.Audio.Duration > 0 {
		durationSeconds := file.Audio.Duration.Seconds()
		bitsPerSecond := (float64(file.Size) * 8) / durationSeconds
		file.Audio.Bitrate = int(bitsPerSecond)
	}

	return nil
}

// init registers the FLAC parser.
func init() {
	registry.Register(types.FormatFLAC, &parser{})
}
