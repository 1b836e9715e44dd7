package main

import (
	"fmt"
	"os"

	cli "github.com/jawher/mow.cli"
	"github.com/rs/zerolog"

	"github.com/adnsv/dockergen/generator"
	"github.com/adnsv/dockergen/settings"
)

const (
	settingsFN   = "settings.yaml"
	templatesDIR = "templates"
	outputDIR    = "generated-dockerfiles"
)

func main() {
	verbose := false

	app := cli.App("dockergen", "Dockerfile generator")
	app.Spec = "[-v]"
	app.BoolOptPtr(&verbose, "v", false, "print extra details about the run")

	app.Action = func() {
		log := newLogger(os.Stderr, verbose)
		log.Info().Str("version", app_version()).Msg("dockergen")

		if err := run(log, settingsFN, templatesDIR, outputDIR); err != nil {
			if settings.IsConfigError(err) {
				log.Fatal().Err(err).Msg("cannot load settings")
			}
			log.Fatal().Err(err).Msg("dockerfile generation failed")
		}
		fmt.Printf("Dockerfiles successfully written to the '%s' directory.\n", outputDIR)
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// run loads the settings before touching the output directory, so a bad
// settings file leaves the filesystem as it was.
func run(log zerolog.Logger, settingsFN, templatesDIR, outputDIR string) error {
	s, err := settings.FromFile(settingsFN)
	if err != nil {
		return err
	}
	for _, k := range s.Ignored {
		log.Warn().Str("key", k).Msg("settings key is not a valid template variable name, ignoring")
	}

	g := generator.New(templatesDIR, outputDIR, generator.WithLogger(log))
	rep, err := g.Run(s)
	if err != nil {
		return err
	}

	log.Info().
		Int("written", len(rep.Written)).
		Int("unchanged", len(rep.Unchanged)).
		Int("skipped", len(rep.Skipped)).
		Msg("done")
	return nil
}
