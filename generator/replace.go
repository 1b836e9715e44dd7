//go:build !windows

package generator

import (
	"github.com/google/renameio/v2"
)

// replaceFile swaps in the new content atomically: readers see either the
// old or the new Dockerfile.
func replaceFile(fn string, buf []byte) error {
	return renameio.WriteFile(fn, buf, 0o644)
}
