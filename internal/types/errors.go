package types

import "fmt"

// UnsupportedFormatError is returned when the file's format cannot be
// identified or no parser is available for it.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when file structure is invalid.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
}

func (e *CorruptedFileError) Error() string {
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// HeaderNotFoundError is returned by the MP3 parser when the file contains
// no recognizable frame sync.
//
// This condition is deliberately distinguished from other parse failures:
// a file that claims to be MP3 but has no locatable frames still yields a
// reportable (degraded) outcome rather than an error. Only the MP3 parser
// reports it; other formats fold their equivalent conditions into generic
// failures.
type HeaderNotFoundError struct {
	Path string
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("%s: no MP3 headers found", e.Path)
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings indicate problems that don't prevent metadata extraction but may
// indicate corrupted or unusual data. They are collected in File.Warnings.
type Warning struct {
	// Stage where the warning occurred ("technical", "container", ...)
	Stage string

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
