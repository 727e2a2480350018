package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// wavSuffix is matched case-sensitively: the backends only ever see files
// the user deliberately named *.wav.
const wavSuffix = ".wav"

// Discover walks inputDir, collects regular files whose names end in
// ".wav", and returns the paths sorted lexicographically for deterministic
// processing order.
func Discover(inputDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.HasSuffix(d.Name(), wavSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
