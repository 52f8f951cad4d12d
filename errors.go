package audioprobe

import (
	"github.com/simonhull/audioprobe/internal/types"
)

// UnsupportedFormatError is an alias to types.UnsupportedFormatError.
// Re-exported from internal/types to keep the public API flat.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is an alias to types.CorruptedFileError.
// Re-exported from internal/types to keep the public API flat.
type CorruptedFileError = types.CorruptedFileError

// HeaderNotFoundError is an alias to types.HeaderNotFoundError.
// Re-exported from internal/types to keep the public API flat.
type HeaderNotFoundError = types.HeaderNotFoundError

// Warning is an alias to types.Warning.
// Re-exported from internal/types to keep the public API flat.
type Warning = types.Warning
