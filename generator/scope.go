package generator

import (
	"os"
	"path/filepath"

	"github.com/flosch/pongo2/v6"
)

func init() {
	// Dockerfiles are plain text
	pongo2.SetAutoescape(false)
}

// scope resolves the templates of a single image directory.
type scope struct {
	dir string
	set *pongo2.TemplateSet // nil if dir is missing or unreadable
}

func openScope(dir string) *scope {
	sc := &scope{dir: dir}

	loader, err := pongo2.NewLocalFileSystemLoader(dir)
	if err != nil {
		return sc
	}

	// whitespace control happens in jinjaLoader, pongo2's Options stay off
	sc.set = pongo2.NewSet(filepath.Base(dir), jinjaLoader{loader})
	return sc
}

// lookup returns the template for t along with its path. A missing template
// yields ErrTemplateNotFound, a broken one a *TemplateError.
func (sc *scope) lookup(t ImageType) (*pongo2.Template, string, error) {
	if sc.set == nil {
		return nil, "", ErrTemplateNotFound
	}

	for _, name := range t.TemplateNames() {
		fn := filepath.Join(sc.dir, name)
		stat, err := os.Stat(fn)
		if err != nil || stat.IsDir() {
			continue
		}
		tpl, err := sc.set.FromFile(name)
		if err != nil {
			return nil, fn, &TemplateError{Path: fn, Err: err}
		}
		return tpl, fn, nil
	}
	return nil, "", ErrTemplateNotFound
}
