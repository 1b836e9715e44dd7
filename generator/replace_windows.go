//go:build windows

package generator

import (
	"os"
)

// renameio has no Windows support; replace in place.
func replaceFile(fn string, buf []byte) error {
	return os.WriteFile(fn, buf, 0o644)
}
