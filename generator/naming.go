package generator

import (
	"fmt"
	"strings"
)

// ImageType selects which template of an image is rendered.
type ImageType string

const (
	Base    ImageType = "Base"
	Devel   ImageType = "Devel"
	Runtime ImageType = "Runtime"
)

// ImageTypes lists the image types in generation order.
var ImageTypes = []ImageType{Base, Devel, Runtime}

func (t ImageType) Lower() string {
	return strings.ToLower(string(t))
}

// TemplateNames returns the candidate template file names for t, in lookup
// order. The .j2 name of Jinja2 template trees is accepted; expressions in
// such files still have to use pongo2 syntax.
func (t ImageType) TemplateNames() []string {
	return []string{
		string(t) + ".dockerfile",
		string(t) + ".dockerfile.j2",
	}
}

// OutputName returns the file name of the Dockerfile generated for one
// combination, e.g. ubuntu_20.04-base.x86_64.Dockerfile.
func OutputName(image, osName string, t ImageType, arch string) string {
	return fmt.Sprintf("%s_%s-%s.%s.Dockerfile", image, osName, t.Lower(), arch)
}
