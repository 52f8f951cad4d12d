package audioprobe

import (
	"errors"
)

// Messages for the two terminal extraction failures. The wording is part of
// the reporting contract.
const (
	noUsableMetadataMsg = "Could not extract metadata. The file may have non-standard formatting or may not be a valid audio file."

	headersNotFoundDuration = "Unknown (headers not found)"
)

// Outcome is the result of one extraction attempt: either a Report or an
// error message, never both.
//
// The remaining fields describe how the report was obtained, for callers
// that surface progress or debug lines.
type Outcome struct {
	// Report holds the normalized metadata; nil when Err is set.
	Report *Report

	// Err is the extraction failure description; empty on success.
	// An Outcome with Err set is still a normal, reportable result,
	// not a process failure.
	Err string

	// RawLength is the structural length in seconds as decoded from the
	// container, before any display formatting. Valid when HasRawLength.
	RawLength    float64
	HasRawLength bool

	// UsedFallback reports that the generic auto-detecting parse, not the
	// extension-selected one, produced the result.
	UsedFallback bool

	// HeadersNotFound reports the degraded outcome: the file claimed to
	// be MP3 but contained no recognizable frame sync.
	HeadersNotFound bool
}

// Inspect extracts structural metadata from a local audio file.
//
// ext is the source file's lowercase extension token (it is trusted over the
// path because downloads land in temporary files); totalSize is the byte
// count reported by the size probe and is used only for the report's file
// size field.
//
// The algorithm is a small decision table with one defensive retry:
//
//  1. Dispatch a parser on the extension; unknown extensions use magic-byte
//     detection.
//  2. If the MP3 parser reports that no frame sync exists, return a degraded
//     report: size known, every musical field unknown. This is a reportable
//     success, not an error.
//  3. If the parse yields usable structural info, normalize and return it.
//  4. If the parse completed but found nothing usable, retry exactly once
//     with the generic auto-detecting parser; its result is authoritative.
//  5. If both attempts come back empty, the Outcome carries an error record.
//
// Any other parse failure is converted into an error record; Inspect never
// panics or returns a Go error past this boundary.
func Inspect(path, ext string, totalSize int64) Outcome {
	file, err := parsePrimary(path, ext)

	if outcome, terminal := classifyError(err, totalSize); terminal {
		return outcome
	}
	if err == nil && !file.Audio.Empty() {
		return successOutcome(file, totalSize, false)
	}

	// Primary attempt yielded nothing usable - one generic retry
	file, err = Open(path)

	if outcome, terminal := classifyError(err, totalSize); terminal {
		outcome.UsedFallback = true
		return outcome
	}
	if err == nil && !file.Audio.Empty() {
		return successOutcome(file, totalSize, true)
	}

	return Outcome{Err: noUsableMetadataMsg}
}

// parsePrimary makes the extension-dispatched extraction attempt.
func parsePrimary(path, ext string) (*File, error) {
	format := FormatForExtension(ext)
	if format == FormatUnknown {
		return Open(path)
	}
	return ParseAs(path, format)
}

// classifyError maps a parse error onto the extraction taxonomy.
//
// terminal is true when the error decides the whole extraction: the MP3
// header-not-found condition degrades into a partial report, and anything
// unexpected becomes an error record. An UnsupportedFormatError is not
// terminal - it means "no usable info here", which the caller treats the
// same as an empty parse result.
func classifyError(err error, totalSize int64) (outcome Outcome, terminal bool) {
	if err == nil {
		return Outcome{}, false
	}

	var hdrErr *HeaderNotFoundError
	if errors.As(err, &hdrErr) {
		return degradedOutcome(totalSize), true
	}

	var unsupErr *UnsupportedFormatError
	if errors.As(err, &unsupErr) {
		return Outcome{}, false
	}

	return Outcome{Err: "Error extracting metadata: " + err.Error()}, true
}

// successOutcome normalizes a usable parse result.
func successOutcome(file *File, totalSize int64, fallback bool) Outcome {
	return Outcome{
		Report:       newReport(file.Audio, totalSize),
		RawLength:    file.Audio.Duration.Seconds(),
		HasRawLength: file.Audio.HasDuration,
		UsedFallback: fallback,
	}
}

// degradedOutcome builds the partial report for a file whose declared
// format's headers could not be located: size is still known from the
// probe, everything musical is unknown.
func degradedOutcome(totalSize int64) Outcome {
	return Outcome{
		Report: &Report{
			FileSize:   formatFileSize(totalSize),
			Duration:   headersNotFoundDuration,
			Channels:   unknownValue,
			SampleRate: unknownValue,
			Bitrate:    unknownValue,
		},
		HeadersNotFound: true,
	}
}
