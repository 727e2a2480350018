// Package mirror maps input file paths to their counterparts under the
// output root. The relative suffix beneath the input root is reused
// verbatim beneath the output root, so the output tree mirrors the input
// tree exactly.
package mirror

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mapper computes mirrored output paths for files discovered under
// InputRoot. Both roots must be absolute, symlink-resolved directories.
type Mapper struct {
	InputRoot  string
	OutputRoot string
}

// New returns a Mapper over the two canonicalized roots.
func New(inputRoot, outputRoot string) *Mapper {
	return &Mapper{InputRoot: inputRoot, OutputRoot: outputRoot}
}

// Map returns the output path for inputAbs: the input root prefix is
// stripped and the remaining suffix joined onto the output root. The walk
// only yields paths under the input root, so a failed strip signals an
// internal inconsistency and is returned as an error (fatal to the run).
func (m *Mapper) Map(inputAbs string) (string, error) {
	sep := string(filepath.Separator)
	prefix := m.InputRoot
	if prefix != sep {
		prefix += sep
	}
	if !strings.HasPrefix(inputAbs, prefix) {
		return "", fmt.Errorf("path %q is not under input root %q", inputAbs, m.InputRoot)
	}
	suffix := strings.TrimPrefix(inputAbs, prefix)
	return filepath.Join(m.OutputRoot, suffix), nil
}

// EnsureParent creates the parent directory of outputAbs, including any
// intermediate directories. It never writes the output file itself.
func (m *Mapper) EnsureParent(outputAbs string) error {
	parent := filepath.Dir(outputAbs)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", parent, err)
	}
	return nil
}
