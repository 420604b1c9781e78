package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/appengine-ltd/bundle-forge/internal/catalog"
	"github.com/appengine-ltd/bundle-forge/internal/config"
	"github.com/appengine-ltd/bundle-forge/internal/logger"
	"github.com/appengine-ltd/bundle-forge/internal/present"
	"github.com/appengine-ltd/bundle-forge/internal/ui"
)

// version, commit, date are injected at build time with -ldflags -X.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		catalogPath string
		soundDir    string
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&catalogPath, "catalog", "", "path to a JSON catalog (default: built-in)")
	flag.StringVar(&soundDir, "audio", "", "directory of .wav sound cues (needs a cgo build)")
	flag.Parse()

	if showVersion {
		fmt.Printf("Bundle Forge %s (%s) %s\n", version, commit, date)
		return
	}

	if err := run(catalogPath, soundDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(catalogPath, soundDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if catalogPath != "" {
		cfg.CatalogPath = catalogPath
	}
	if soundDir != "" {
		cfg.SoundDir = soundDir
	}

	// The terminal belongs to the UI; logs only go to a file when asked for.
	var out io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger.InitTo(out, cfg.Log.Level, cfg.Log.Pretty)
	log := logger.Logger()

	cat, err := catalog.Load(cfg.CatalogPath, log)
	if err != nil {
		return err
	}
	if len(cat.Skipped) > 0 {
		log.Warn().Strs("bundles", cat.Skipped).Msg("catalog loaded with skipped bundles")
	}

	appCfg := ui.AppConfig{
		Version:   version,
		Commit:    commit,
		BuildDate: date,
		Config:    cfg,
		Catalog:   cat,
	}
	if audio, ok := present.NewAudio(cfg.SoundDir, log); ok {
		defer audio.Close()
		appCfg.Sound = audio
	}

	log.Info().Str("version", version).Int("bundles", len(cat.Bundles)).Msg("starting")
	return ui.NewApp(appCfg).Run()
}
