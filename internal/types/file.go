// Package types provides the core data structures for structural audio
// metadata.
//
// This package defines the File, AudioInfo, and Format types that represent
// a parsed audio file across all supported container formats. Descriptive
// tags (title, artist, etc.) are deliberately out of scope: audioprobe only
// reads the technical description of the stream.
package types

// File represents a parsed audio file.
//
// File carries the technical audio properties extracted from the container
// plus any non-fatal warnings encountered along the way. A File with an
// empty AudioInfo means the parser completed but found no usable structural
// information.
type File struct {
	Path     string
	Warnings []Warning
	Audio    AudioInfo
	Format   Format
	Size     int64
}
