package m4a

import (
	"io"

	"github.com/simonhull/audioprobe/internal/binary"
	"github.com/simonhull/audioprobe/internal/registry"
	"github.com/simonhull/audioprobe/internal/types"
)

// parser implements the registry.FormatParser interface.
type parser struct{}

// Parse parses an M4A/M4B/MP4 file and extracts structural info.
//
// A container without a moov atom is not an error: the parse simply yields
// an empty AudioInfo and callers decide what to do with it.
func (p *parser) Parse(r io.ReaderAt, size int64, path string) (*types.File, error) {
	sr := binary.NewSafeReader(r, size, path)

	format, err := types.DetectFormat(r, size, path)
	if err != nil {
		return nil, err
	}

	file := &types.File{
		Path:   path,
		Format: format,
		Size:   size,
		Audio:  types.AudioInfo{},
	}
	file.Audio.Container = "MP4"

	moovAtom, err := findAtom(sr, 0, size, "moov")
	if err != nil {
		// No moov atom - return basic file info
		return file, nil
	}

	parseTechnicalInfo(sr, moovAtom, file)

	return file, nil
}

// init registers the M4A/M4B parser.
func init() {
	p := &parser{}
	registry.Register(types.FormatM4A, p)
	registry.Register(types.FormatM4B, p)
}
