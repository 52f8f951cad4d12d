// Package ogg implements Ogg container parsing for Vorbis and Opus streams.
package ogg

import (
	"fmt"

	"github.com/simonhull/audioprobe/internal/binary"
)

// Page represents an Ogg page.
//
// An Ogg page is the fundamental unit of the Ogg container format. Each page
// contains a header and payload data.
type Page struct {
	HeaderType      byte   // Bit flags: 0x01=continued, 0x02=BOS, 0x04=EOS
	GranulePosition int64  // Position in samples
	SerialNumber    uint32 // Logical bitstream identifier
	SequenceNumber  uint32 // Page sequence number
	Data            []byte // Page payload (one or more packets)
}

// readPage reads an Ogg page at the given offset.
//
// Returns the page, the offset of the next page, and any error encountered.
func readPage(sr *binary.SafeReader, offset int64) (*Page, int64, error) {
	// Verify "OggS" magic marker
	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, offset, "Ogg magic"); err != nil {
		return nil, 0, err
	}
	if string(magic) != "OggS" {
		return nil, 0, fmt.Errorf("invalid Ogg page at offset %d", offset)
	}

	// Stream structure version must be 0x00
	version, err := binary.Read[uint8](sr, offset+4, "version")
	if err != nil {
		return nil, 0, err
	}
	if version != 0 {
		return nil, 0, fmt.Errorf("unsupported Ogg version: %d", version)
	}

	headerType, err := binary.Read[uint8](sr, offset+5, "header type")
	if err != nil {
		return nil, 0, err
	}

	granule, err := binary.ReadLE[uint64](sr, offset+6, "granule position")
	if err != nil {
		return nil, 0, err
	}

	serial, err := binary.ReadLE[uint32](sr, offset+14, "serial number")
	if err != nil {
		return nil, 0, err
	}

	sequence, err := binary.ReadLE[uint32](sr, offset+18, "sequence number")
	if err != nil {
		return nil, 0, err
	}

	segmentCount, err := binary.Read[uint8](sr, offset+26, "segment count")
	if err != nil {
		return nil, 0, err
	}

	// Segment table: each byte is the size of a segment (0-255)
	segments := make([]byte, segmentCount)
	if err := sr.ReadAt(segments, offset+27, "segment table"); err != nil {
		return nil, 0, err
	}

	dataSize := 0
	for _, seg := range segments {
		dataSize += int(seg)
	}

	data := make([]byte, dataSize)
	dataOffset := offset + 27 + int64(segmentCount)
	if dataSize > 0 {
		if err := sr.ReadAt(data, dataOffset, "page data"); err != nil {
			return nil, 0, err
		}
	}

	page := &Page{
		HeaderType:      headerType,
		GranulePosition: int64(granule),
		SerialNumber:    serial,
		SequenceNumber:  sequence,
		Data:            data,
	}

	return page, dataOffset + int64(dataSize), nil
}

// extractPackets extracts complete packets from a series of pages.
//
// Ogg packets can span multiple pages; a page whose continuation flag is set
// extends the packet in progress.
func extractPackets(pages []*Page) [][]byte {
	var packets [][]byte
	var currentPacket []byte

	for _, page := range pages {
		if page.HeaderType&0x01 != 0 && len(currentPacket) > 0 {
			currentPacket = append(currentPacket, page.Data...)
		} else {
			if len(currentPacket) > 0 {
				packets = append(packets, currentPacket)
			}
			currentPacket = make([]byte, len(page.Data))
			copy(currentPacket, page.Data)
		}
	}

	if len(currentPacket) > 0 {
		packets = append(packets, currentPacket)
	}

	return packets
}

// findLastGranulePosition searches backwards from the end of file for the
// final Ogg page's granule position, which gives the total sample count.
func findLastGranulePosition(sr *binary.SafeReader, fileSize int64) (int64, error) {
	// Search the last 64KB (typical max page size)
	searchStart := fileSize - 65536
	if searchStart < 0 {
		searchStart = 0
	}

	searchSize := fileSize - searchStart
	buf := make([]byte, searchSize)
	if err := sr.ReadAt(buf, searchStart, "search region"); err != nil {
		return 0, err
	}

	lastOggPos := int64(-1)
	for i := len(buf) - 4; i >= 0; i-- {
		if buf[i] == 'O' && buf[i+1] == 'g' && buf[i+2] == 'g' && buf[i+3] == 'S' {
			lastOggPos = searchStart + int64(i)
			break
		}
	}

	if lastOggPos < 0 {
		return 0, fmt.Errorf("could not find last Ogg page")
	}

	// Granule position sits at offset 6 from "OggS"
	granule, err := binary.ReadLE[uint64](sr, lastOggPos+6, "granule position")
	if err != nil {
		return 0, err
	}

	return int64(granule), nil
}
