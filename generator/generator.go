// Package generator renders Dockerfile templates for every combination of
// architecture, image, OS and image type named in the settings.
package generator

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/rs/zerolog"

	"github.com/adnsv/dockergen/settings"
)

// Generator expands the templates found under a templates root into
// Dockerfiles under an output directory.
type Generator struct {
	templatesDir string
	outputDir    string
	now          func() time.Time
	log          zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the sink for skip and update diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// WithClock overrides the source of the "now" template variable.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// New returns a Generator reading templates from templatesDir and writing
// into outputDir.
func New(templatesDir, outputDir string, options ...Option) *Generator {
	g := &Generator{
		templatesDir: templatesDir,
		outputDir:    outputDir,
		now:          func() time.Time { return time.Now().UTC() },
		log:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Skip names a combination for which the image has no template.
type Skip struct {
	Arch  string
	Image string
	OS    string
	Type  ImageType
}

// Report describes the outcome of a run. Paths include the output directory.
type Report struct {
	Written   []string
	Unchanged []string
	Skipped   []Skip
}

// Run renders every combination described by s. Combinations without a
// template are skipped. The first output or template failure aborts the run;
// files written before it stay on disk.
func (g *Generator) Run(s *settings.Settings) (*Report, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return nil, &IOError{Op: "mkdir", Path: g.outputDir, Err: err}
	}

	rep := &Report{}
	for _, arch := range s.Archs {
		for _, image := range arch.Images {
			sc := openScope(filepath.Join(g.templatesDir, image))
			for _, osName := range arch.OSList {
				for _, t := range ImageTypes {
					err := g.generate(rep, s, sc, arch.Name, image, osName, t)
					if err != nil {
						return rep, err
					}
				}
			}
		}
	}
	return rep, nil
}

func (g *Generator) generate(rep *Report, s *settings.Settings, sc *scope, arch, image, osName string, t ImageType) error {
	tpl, tplFN, err := sc.lookup(t)
	if errors.Is(err, ErrTemplateNotFound) {
		g.log.Warn().
			Str("image", image).
			Str("type", string(t)).
			Str("os", osName).
			Str("arch", arch).
			Msg("template not found, skipping")
		rep.Skipped = append(rep.Skipped, Skip{Arch: arch, Image: image, OS: osName, Type: t})
		return nil
	} else if err != nil {
		return err
	}

	ctx := s.Context(arch, osName, t.Lower(), g.now())
	out, err := tpl.ExecuteBytes(pongo2.Context(ctx))
	if err != nil {
		return &TemplateError{Path: tplFN, Err: err}
	}

	fn := filepath.Join(g.outputDir, OutputName(image, osName, t, arch))
	written, err := writeFileIfChanged(fn, out)
	if err != nil {
		return err
	}
	if written {
		g.log.Info().Str("path", fn).Msg("updated")
		rep.Written = append(rep.Written, fn)
	} else {
		rep.Unchanged = append(rep.Unchanged, fn)
	}
	return nil
}
