package ogg

import (
	"fmt"
	"io"
	"time"

	"github.com/simonhull/audioprobe/internal/binary"
	"github.com/simonhull/audioprobe/internal/registry"
	"github.com/simonhull/audioprobe/internal/types"
)

const (
	codecVorbis  = "vorbis"
	codecOpus    = "opus"
	containerOgg = "Ogg"
)

// parser implements the registry.FormatParser interface for Ogg streams.
type parser struct{}

// Parse parses an Ogg file (Vorbis or Opus) and extracts structural info.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (*types.File, error) {
	sr := binary.NewSafeReader(r, size, path)

	// Verify Ogg magic bytes ("OggS")
	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "Ogg magic bytes"); err != nil {
		return nil, fmt.Errorf("read Ogg magic: %w", err)
	}
	if string(magic) != "OggS" {
		return nil, &types.CorruptedFileError{
			Path:   path,
			Offset: 0,
			Reason: "invalid Ogg magic bytes",
		}
	}

	file := &types.File{
		Path:   path,
		Format: types.FormatOgg,
		Size:   size,
		Audio:  types.AudioInfo{},
	}

	// The identification header always lives in the first pages
	var pages []*Page
	offset := int64(0)

	for i := 0; i < 3 && offset < size; i++ {
		page, nextOffset, err := readPage(sr, offset)
		if err != nil {
			if i == 0 {
				// First page failed - this is fatal
				return nil, fmt.Errorf("failed to read first Ogg page: %w", err)
			}
			file.Warnings = append(file.Warnings, types.Warning{
				Stage:   "container",
				Message: fmt.Sprintf("failed to read Ogg page %d: %v", i, err),
				Offset:  offset,
			})
			break
		}
		pages = append(pages, page)
		offset = nextOffset
	}

	packets := extractPackets(pages)
	if len(packets) == 0 {
		return nil, fmt.Errorf("no Ogg packets found")
	}

	switch detectOggCodec(packets[0]) {
	case codecVorbis:
		file.Format = types.FormatOgg
		if err := parseVorbisIdentification(packets[0], file); err != nil {
			return nil, fmt.Errorf("failed to parse Vorbis identification header: %w", err)
		}

		if file.Audio.SampleRate > 0 {
			duration, err := calculateDuration(sr, size, file.Audio.SampleRate)
			if err != nil {
				file.Warnings = append(file.Warnings, types.Warning{
					Stage:   "technical",
					Message: fmt.Sprintf("failed to calculate duration: %v", err),
				})
			} else {
				file.Audio.Duration = duration
				file.Audio.HasDuration = true
			}
		}

	case codecOpus:
		file.Format = types.FormatOpus
		if err := parseOpusHead(packets[0], file); err != nil {
			return nil, fmt.Errorf("failed to parse OpusHead header: %w", err)
		}

		// Opus always plays out at 48kHz
		duration, err := calculateDuration(sr, size, 48000)
		if err != nil {
			file.Warnings = append(file.Warnings, types.Warning{
				Stage:   "technical",
				Message: fmt.Sprintf("failed to calculate duration: %v", err),
			})
		} else {
			file.Audio.Duration = duration
			file.Audio.HasDuration = true
		}

		// OpusHead has no nominal bitrate field
		if file.Audio.Duration > 0 {
			file.Audio.Bitrate = estimateOpusBitrate(size, file.Audio.Duration)
		}

	default:
		return nil, fmt.Errorf("unknown or unsupported Ogg codec")
	}

	return file, nil
}

// detectOggCodec determines whether the stream is Vorbis or Opus by
// examining the magic marker in the first packet.
func detectOggCodec(firstPacket []byte) string {
	if len(firstPacket) >= 8 && string(firstPacket[0:8]) == "OpusHead" {
		return codecOpus
	}

	if len(firstPacket) >= 7 && firstPacket[0] == 0x01 && string(firstPacket[1:7]) == codecVorbis {
		return codecVorbis
	}

	return "unknown"
}

// estimateOpusBitrate estimates the bitrate from file size and duration,
// subtracting roughly 5KB for headers and metadata overhead.
func estimateOpusBitrate(fileSize int64, duration time.Duration) int {
	seconds := duration.Seconds()
	if seconds == 0 {
		return 0
	}

	audioSize := fileSize - 5000
	if audioSize < 0 {
		audioSize = fileSize
	}

	return int((float64(audioSize) * 8) / seconds)
}

// calculateDuration derives duration from the last page's granule position:
// duration = granule_position / sample_rate.
func calculateDuration(sr *binary.SafeReader, fileSize int64, sampleRate int) (time.Duration, error) {
	if sampleRate == 0 {
		return 0, fmt.Errorf("sample rate is zero")
	}

	granule, err := findLastGranulePosition(sr, fileSize)
	if err != nil {
		return 0, err
	}

	// Granule position -1 means "not set"
	if granule < 0 {
		return 0, fmt.Errorf("granule position not set")
	}

	seconds := float64(granule) / float64(sampleRate)
	return time.Duration(seconds * float64(time.Second)), nil
}

// init registers the Ogg parser for both Vorbis and Opus formats.
func init() {
	p := &parser{}
	registry.Register(types.FormatOgg, p)
	registry.Register(types.FormatOpus, p)
}
