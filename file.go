package audioprobe

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/audioprobe/internal/registry"
	"github.com/simonhull/audioprobe/internal/types"

	// Register the format parsers.
	_ "github.com/simonhull/audioprobe/internal/flac"
	_ "github.com/simonhull/audioprobe/internal/m4a"
	_ "github.com/simonhull/audioprobe/internal/mp3"
	_ "github.com/simonhull/audioprobe/internal/ogg"
	_ "github.com/simonhull/audioprobe/internal/wav"
)

// File is an alias to types.File.
// Re-exported from internal/types to keep the public API flat.
type File = types.File

// AudioInfo is an alias to types.AudioInfo.
// Re-exported from internal/types to keep the public API flat.
type AudioInfo = types.AudioInfo

// Open parses an audio file using magic-byte format detection.
//
// This is the generic auto-detecting parse: it ignores the file's extension
// entirely. Inspect uses it both for files with unrecognized extensions and
// as the one-shot fallback when an extension-selected parse yields no usable
// structural info.
func Open(path string) (*File, error) {
	f, size, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	format, err := DetectFormat(f, size, path)
	if err != nil {
		return nil, err
	}

	return parseWith(f, size, path, format)
}

// ParseAs parses an audio file with the parser for an explicitly chosen
// format, regardless of what the file's contents look like.
func ParseAs(path string, format Format) (*File, error) {
	f, size, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parseWith(f, size, path, format)
}

// OpenMany parses multiple local audio files concurrently.
//
// Files are parsed in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths. If any file
// fails to parse, an error is returned.
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*File, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			file, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// openFile opens a file and returns its handle and size.
func openFile(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat file: %w", err)
	}

	return f, stat.Size(), nil
}

// parseWith runs the registered parser for format against r.
func parseWith(r io.ReaderAt, size int64, path string, format Format) (*File, error) {
	parser := registry.Get(format)
	if parser == nil {
		return nil, &UnsupportedFormatError{
			Path:   path,
			Reason: fmt.Sprintf("no parser available for format %s", format),
		}
	}

	file, err := parser.Parse(r, size, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}

	file.Path = path
	file.Size = size

	return file, nil
}
