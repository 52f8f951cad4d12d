package mp3

import (
	binutil "github.com/simonhull/audioprobe/internal/binary"
)

// id3v2TagSize returns the total number of bytes occupied by an ID3v2 tag at
// the start of the file, or 0 if the file does not begin with one.
//
// The tag contents themselves are not decoded; the size is only needed to
// locate the first audio frame.
func id3v2TagSize(sr *binutil.SafeReader) int64 {
	buf := make([]byte, 10)
	if err := sr.ReadAt(buf, 0, "ID3v2 header"); err != nil {
		return 0
	}

	if string(buf[0:3]) != "ID3" {
		return 0
	}

	flags := buf[5]
	size := int64(decodeSynchsafe(buf[6:10]))

	// Header is 10 bytes; an ID3v2.4 footer adds another 10
	total := size + 10
	if flags&0x10 != 0 {
		total += 10
	}

	return total
}

// decodeSynchsafe decodes a 4-byte synchsafe integer (7 bits per byte).
func decodeSynchsafe(b []byte) uint32 {
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}
