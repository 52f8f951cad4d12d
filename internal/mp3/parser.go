// Package mp3 implements MP3 frame parsing for structural audio info.
package mp3

import (
	"io"

	binutil "github.com/simonhull/audioprobe/internal/binary"
	"github.com/simonhull/audioprobe/internal/registry"
	"github.com/simonhull/audioprobe/internal/types"
)

// parser implements the registry.FormatParser interface.
type parser struct{}

// Parse parses an MP3 file and extracts structural info.
//
// An ID3v2 tag at the start of the file is skipped, not decoded. If no frame
// sync can be located anywhere after it, Parse returns
// *types.HeaderNotFoundError.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (*types.File, error) {
	sr := binutil.NewSafeReader(r, size, path)

	file := &types.File{
		Path:   path,
		Format: types.FormatMP3,
		Size:   size,
		Audio:  types.AudioInfo{},
	}

	tagSize := id3v2TagSize(sr)

	if err := parseTechnicalInfo(sr, tagSize, size, file); err != nil {
		return nil, err
	}

	file.Audio.Container = "MPEG"

	return file, nil
}

// init registers the MP3 parser.
func init() {
	registry.Register(types.FormatMP3, &parser{})
}
