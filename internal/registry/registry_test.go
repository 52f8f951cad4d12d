package registry

import (
	"io"
	"testing"

	"github.com/simonhull/audioprobe/internal/types"
)

// mockParser implements FormatParser for testing.
type mockParser struct {
	name string
}

func (m *mockParser) Parse(r io.ReaderAt, size int64, path string) (*types.File, error) {
	return &types.File{Path: m.name}, nil
}

func TestRegisterAndGet(t *testing.T) {
	// Use a format that's unlikely to conflict with real registrations
	format := types.Format(999)
	parser := &mockParser{name: "test"}

	Register(format, parser)

	got := Get(format)
	if got == nil {
		t.Fatal("Get() returned nil for registered format")
	}

	mp, ok := got.(*mockParser)
	if !ok {
		t.Fatal("Get() returned wrong parser type")
	}
	if mp.name != "test" {
		t.Errorf("Parser name = %q, want %q", mp.name, "test")
	}
}

func TestGet_Unregistered(t *testing.T) {
	format := types.Format(998)

	if got := Get(format); got != nil {
		t.Errorf("Get() = %v for unregistered format, want nil", got)
	}
}
