// Package wav implements RIFF/WAVE parsing for structural audio info.
package wav

import (
	"fmt"
	"io"
	"time"

	"github.com/simonhull/audioprobe/internal/binary"
	"github.com/simonhull/audioprobe/internal/registry"
	"github.com/simonhull/audioprobe/internal/types"
)

// parser implements the registry.FormatParser interface for WAV files.
type parser struct{}

// Parse parses a WAV file and extracts structural info.
//
// The fmt chunk gives channels, sample rate, and byte rate (bitrate); the
// data chunk size combined with the byte rate gives the duration.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (*types.File, error) {
	sr := binary.NewSafeReader(r, size, path)

	// Verify "RIFF....WAVE" header
	header := make([]byte, 12)
	if err := sr.ReadAt(header, 0, "RIFF header"); err != nil {
		return nil, fmt.Errorf("read RIFF header: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Offset: 0,
			Reason: "invalid RIFF/WAVE header",
		}
	}

	file := &types.File{
		Path:   path,
		Format: types.FormatWAV,
		Size:   size,
		Audio:  types.AudioInfo{},
	}
	file.Audio.Container = "WAV"
	file.Audio.Codec = "PCM"
	file.Audio.Lossless = true

	var byteRate uint32
	var dataSize int64

	// Walk chunks after the 12-byte RIFF header
	offset := int64(12)
	for offset+8 <= size {
		chunkID := make([]byte, 4)
		if err := sr.ReadAt(chunkID, offset, "chunk id"); err != nil {
			file.Warnings = append(file.Warnings, types.Warning{
				Stage:   "container",
				Message: fmt.Sprintf("failed to read chunk header: %v", err),
				Offset:  offset,
			})
			break
		}

		chunkSize, err := binary.ReadLE[uint32](sr, offset+4, "chunk size")
		if err != nil {
			break
		}

		switch string(chunkID) {
		case "fmt ":
			if err := parseFmtChunk(sr, offset+8, chunkSize, file, &byteRate); err != nil {
				file.Warnings = append(file.Warnings, types.Warning{
					Stage:   "technical",
					Message: fmt.Sprintf("failed to parse fmt chunk: %v", err),
					Offset:  offset,
				})
			}
		case "data":
			dataSize = int64(chunkSize)
		}

		// Chunks are word-aligned: odd sizes carry a padding byte
		offset += 8 + int64(chunkSize)
		if chunkSize%2 == 1 {
			offset++
		}
	}

	if byteRate > 0 && dataSize > 0 {
		durationSeconds := float64(dataSize) / float64(byteRate)
		file.Audio.Duration = time.Duration(durationSeconds * float64(time.Second))
		file.Audio.HasDuration = true
	}

	return file, nil
}

// parseFmtChunk decodes the fmt chunk (all fields little-endian).
func parseFmtChunk(sr *binary.SafeReader, offset int64, chunkSize uint32, file *types.File, byteRate *uint32) error {
	// PCM fmt chunk is at least 16 bytes
	if chunkSize < 16 {
		return fmt.Errorf("fmt chunk too small: %d bytes", chunkSize)
	}

	// Skip audio format code (2 bytes)
	channels, err := binary.ReadLE[uint16](sr, offset+2, "channels")
	if err != nil {
		return err
	}

	sampleRate, err := binary.ReadLE[uint32](sr, offset+4, "sample rate")
	if err != nil {
		return err
	}

	rate, err := binary.ReadLE[uint32](sr, offset+8, "byte rate")
	if err != nil {
		return err
	}

	bitsPerSample, err := binary.ReadLE[uint16](sr, offset+14, "bits per sample")
	if err != nil {
		return err
	}

	file.Audio.Channels = int(channels)
	file.Audio.SampleRate = int(sampleRate)
	file.Audio.BitDepth = int(bitsPerSample)
	file.Audio.Bitrate = int(rate) * 8
	*byteRate = rate

	return nil
}

// init registers the WAV parser.
func init() {
	registry.Register(types.FormatWAV, &parser{})
}
