// Package settings loads the generator settings document.
package settings

import (
	"time"
)

// Top-level keys every settings document must define.
const (
	KeyLibs  = "RAPIDS_LIBS"
	KeyArchs = "ARCHS"
)

// Names the generator adds to the render context for every combination.
// A settings document may not define them at the top level.
const (
	VarArch      = "arch"
	VarOS        = "os"
	VarImageType = "image_type"
	VarNow       = "now"
)

var reservedKeys = []string{VarArch, VarOS, VarImageType, VarNow}

// Settings is a loaded settings document. The typed fields mirror the
// entries of RAPIDS_LIBS and ARCHS; every top-level key, including those two,
// stays available to templates through Context.
type Settings struct {
	Libs  []*Library
	Archs []*Arch

	// Ignored lists top-level keys that are not valid template variable
	// names. They are left out of the render context.
	Ignored []string

	raw map[string]any
}

// Library is an entry of RAPIDS_LIBS.
type Library struct {
	Name             string
	UpdateSubmodules bool
}

// Arch is an entry of ARCHS.
type Arch struct {
	Name   string
	Images []string
	OSList []string
}

// Context builds the render context for one combination: a shallow copy of
// the top-level settings plus the derived values.
func (s *Settings) Context(arch, osName, imageType string, now time.Time) map[string]any {
	ctx := make(map[string]any, len(s.raw)+len(reservedKeys))
	for k, v := range s.raw {
		ctx[k] = v
	}
	ctx[VarArch] = arch
	ctx[VarOS] = osName
	ctx[VarImageType] = imageType
	ctx[VarNow] = now
	return ctx
}
