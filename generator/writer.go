package generator

import (
	"github.com/adnsv/go-utils/fs"
)

// writeFileIfChanged stores buf in fn unless fn already holds exactly these
// bytes, and reports whether it wrote.
func writeFileIfChanged(fn string, buf []byte) (bool, error) {
	if fs.CheckFileHasContent(fn, buf) {
		return false, nil
	}
	if err := replaceFile(fn, buf); err != nil {
		return false, &IOError{Op: "write", Path: fn, Err: err}
	}
	return true, nil
}
