// Package srcfile is the source-reading facility spec.md §1 names as an
// external collaborator: "returns the full file contents as a byte
// buffer." Kept as a thin wrapper per SPEC_FULL.md §2 rather than a
// caching file reader, since spec.md §4.8 only ever reads one source
// file per driver run.
package srcfile

import (
	"fmt"
	"os"
)

// Read returns the full contents of path, owned by the caller (spec.md
// §4.1's "Source bytes are owned outside the arena and freed by the
// driver after the pipeline completes" -- Go's GC retires that freeing
// to "let the slice go out of scope," but the ownership boundary is the
// same one spec.md draws).
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file %s: %w", path, err)
	}
	return data, nil
}
