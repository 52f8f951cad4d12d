package types

import (
	"io"

	"github.com/simonhull/audioprobe/internal/binary"
)

// Format represents the detected audio container format.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatFLAC represents FLAC audio files.
	FormatFLAC
	// FormatMP3 represents MP3 audio files.
	FormatMP3
	// FormatM4A represents M4A/MP4 audio files.
	FormatM4A
	// FormatM4B represents M4B audiobook files.
	FormatM4B
	// FormatOgg represents Ogg Vorbis audio files.
	FormatOgg
	// FormatOpus represents Ogg Opus audio files.
	FormatOpus
	// FormatWAV represents WAV audio files.
	FormatWAV
	// FormatAIFF represents AIFF audio files.
	FormatAIFF
)

// String returns the conventional name of the format.
func (f Format) String() string {
	switch f {
	case FormatFLAC:
		return "FLAC"
	case FormatMP3:
		return "MP3"
	case FormatM4A:
		return "M4A"
	case FormatM4B:
		return "M4B"
	case FormatOgg:
		return "Ogg Vorbis"
	case FormatOpus:
		return "Opus"
	case FormatWAV:
		return "WAV"
	case FormatAIFF:
		return "AIFF"
	default:
		return "Unknown"
	}
}

// DetectFormat determines the audio file format by examining magic bytes.
//
// Supported formats: FLAC, MP3, M4A, M4B, Ogg Vorbis, Opus, WAV, AIFF.
//
// Detection is based on file signatures at the beginning of the file; it
// does not validate the entire file structure. This is the auto-detecting
// capability behind the generic parser used when a file's extension gives
// no hint (and as the fallback when an extension-selected parse comes back
// empty).
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) { //nolint:gocyclo // Format detection requires checking multiple magic byte patterns
	// Any meaningful signature needs at least 4 bytes
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "file too small",
		}
	}

	sr := binary.NewSafeReader(r, size, path)

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "file magic bytes"); err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	// FLAC ("fLaC")
	if string(magic) == "fLaC" {
		return FormatFLAC, nil
	}

	// MP3 with an ID3v2 tag
	if string(magic[:3]) == "ID3" {
		return FormatMP3, nil
	}

	// Bare MP3 frame sync (11 set bits) - catches files without ID3 tags
	if magic[0] == 0xFF && (magic[1]&0xE0) == 0xE0 {
		return FormatMP3, nil
	}

	// Ogg ("OggS") - could be Vorbis or Opus
	if string(magic) == "OggS" {
		// Look inside the first page for the codec magic.
		// Page header: 27 bytes fixed + segment table (variable).
		if size >= 36 {
			segCount := make([]byte, 1)
			if err := sr.ReadAt(segCount, 26, "segment count"); err == nil {
				packetOffset := int64(27 + int(segCount[0]))
				if packetOffset+8 <= size {
					codecMagic := make([]byte, 8)
					if err := sr.ReadAt(codecMagic, packetOffset, "codec magic"); err == nil {
						if string(codecMagic) == "OpusHead" {
							return FormatOpus, nil
						}
					}
				}
			}
		}
		return FormatOgg, nil
	}

	// WAV ("RIFF....WAVE")
	if string(magic) == "RIFF" && size >= 12 {
		waveTag := make([]byte, 4)
		if err := sr.ReadAt(waveTag, 8, "WAVE tag"); err == nil {
			if string(waveTag) == "WAVE" {
				return FormatWAV, nil
			}
		}
	}

	// AIFF ("FORM....AIFF")
	if string(magic) == "FORM" && size >= 12 {
		aiffTag := make([]byte, 4)
		if err := sr.ReadAt(aiffTag, 8, "AIFF tag"); err == nil {
			if string(aiffTag) == "AIFF" || string(aiffTag) == "AIFC" {
				return FormatAIFF, nil
			}
		}
	}

	// MP4 family: the first atom must be ftyp
	atomSize, err := binary.Read[uint32](sr, 0, "ftyp atom size")
	if err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	atomType, err := binary.Read[uint32](sr, 4, "ftyp atom type")
	if err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read file header",
		}
	}

	const ftypMagic = uint32(0x66747970) // "ftyp"
	if atomType != ftypMagic {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "unsupported file format",
		}
	}

	// ftyp atom must be at least 16 bytes (size + type + brand + version)
	if atomSize < 16 {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "ftyp atom too small",
		}
	}

	majorBrand, err := binary.Read[uint32](sr, 8, "major brand")
	if err != nil {
		return FormatUnknown, &UnsupportedFormatError{
			Path:   path,
			Reason: "failed to read major brand",
		}
	}

	const m4bMagic = uint32(0x4D344220) // "M4B "
	if majorBrand == m4bMagic {
		return FormatM4B, nil
	}

	const (
		m4aMagic  = uint32(0x4D344120) // "M4A "
		mp42Magic = uint32(0x6D703432) // "mp42"
		isomMagic = uint32(0x69736F6D) // "isom"
	)
	if majorBrand == m4aMagic || majorBrand == mp42Magic || majorBrand == isomMagic {
		return FormatM4A, nil
	}

	return FormatUnknown, &UnsupportedFormatError{
		Path:   path,
		Reason: "unsupported file brand",
	}
}
