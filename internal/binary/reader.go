// Package binary provides type-safe binary reading primitives with bounds
// checking.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Endianness represents byte order for multi-byte values.
type Endianness int

const (
	// BigEndian byte order. Used by MP4 atoms, FLAC block headers, MP3
	// frame headers.
	BigEndian Endianness = iota

	// LittleEndian byte order. Used by Vorbis headers, Ogg page fields,
	// and RIFF/WAV chunks.
	LittleEndian
)

// SafeReader wraps io.ReaderAt with bounds checking and helpful error
// messages. Every read names what was being read so parse failures point at
// the offending structure instead of a bare offset.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the total size the reader is bounded to.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads bytes at the given offset with context for error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size {
		return fmt.Errorf("%s: offset %d out of bounds (file size: %d) while reading %s",
			sr.path, off, sr.size, what)
	}

	if off+int64(len(b)) > sr.size {
		return fmt.Errorf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
			sr.path, len(b), off, sr.size, what)
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// Read reads a big-endian value of type T from the given offset.
func Read[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, BigEndian)
}

// ReadBE reads a big-endian value of type T from the given offset.
// Equivalent to Read but explicit about byte order.
func ReadBE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, BigEndian)
}

// ReadLE reads a little-endian value of type T from the given offset.
func ReadLE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return ReadEndian[T](sr, off, what, LittleEndian)
}

// ReadEndian reads a numeric value of type T at the given offset with the
// specified byte order. Most code should use Read, ReadBE, or ReadLE.
func ReadEndian[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string, endian Endianness) (T, error) {
	var zero T
	var size int

	switch any(zero).(type) {
	case uint8:
		size = 1
	case uint16:
		size = 2
	case uint32:
		size = 4
	case uint64:
		size = 8
	}

	buf := make([]byte, size)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}

	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(buf[0])
	case uint16:
		if endian == LittleEndian {
			val = T(binary.LittleEndian.Uint16(buf))
		} else {
			val = T(binary.BigEndian.Uint16(buf))
		}
	case uint32:
		if endian == LittleEndian {
			val = T(binary.LittleEndian.Uint32(buf))
		} else {
			val = T(binary.BigEndian.Uint32(buf))
		}
	case uint64:
		if endian == LittleEndian {
			val = T(binary.LittleEndian.Uint64(buf))
		} else {
			val = T(binary.BigEndian.Uint64(buf))
		}
	}

	return val, nil
}
