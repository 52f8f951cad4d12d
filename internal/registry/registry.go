// Package registry manages format-specific parsers for audio file types.
package registry

import (
	"io"

	"github.com/simonhull/audioprobe/internal/types"
)

// FormatParser is the interface all format parsers implement.
type FormatParser interface {
	// Parse extracts structural metadata from an audio file.
	// Returns a partially initialized File (Path, Format, Size set by caller).
	Parse(r io.ReaderAt, size int64, path string) (*types.File, error)
}

// parsers maps formats to their parsers.
var parsers = make(map[types.Format]FormatParser)

// Register registers a parser for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, parser FormatParser) {
	parsers[format] = parser
}

// Get returns the parser for a given format.
// Returns nil if no parser is registered for the format.
func Get(format types.Format) FormatParser {
	return parsers[format]
}
