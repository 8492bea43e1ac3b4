package video

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Discover returns the files matching pattern in lexicographic order,
// which is frame order for zero-padded ids.
func Discover(pattern string) ([]string, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(paths)
	return paths, nil
}
