package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"

	"sphere-viewer/internal/app"
	"sphere-viewer/internal/commands"
	"sphere-viewer/internal/config"
	"sphere-viewer/internal/debug"
	"sphere-viewer/internal/engine"
	"sphere-viewer/internal/env"
	"sphere-viewer/internal/graphics"
	"sphere-viewer/internal/headless"
	"sphere-viewer/internal/logger"
	"sphere-viewer/internal/material"
)

// errLogged marks an error that has already been written to the log.
var errLogged = errors.New("logged")

func init() {
	// raylib must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	reg := commands.NewRegistry("run")

	var (
		configPath string
		envPath    string
		noWindow   bool
		frames     uint64
	)
	common := func(fs *flag.FlagSet) {
		fs.StringVar(&configPath, "config", config.DefaultPath, "Path to the viewer YAML config")
		fs.StringVar(&envPath, "env", ".env", "Dotenv file loaded before the config")
	}

	runFS := flag.NewFlagSet("run", flag.ExitOnError)
	common(runFS)
	runFS.BoolVar(&noWindow, "headless", false, "Run without a window")
	runFS.Uint64Var(&frames, "frames", 0, "Stop a headless run after N frames (0 runs until interrupted)")
	reg.Register("run", "open the viewer (default)", runFS, func([]string) error {
		return run(configPath, envPath, noWindow, frames)
	})

	fetchFS := flag.NewFlagSet("fetch", flag.ExitOnError)
	common(fetchFS)
	reg.Register("fetch", "download a material snippet and print it", fetchFS, func(args []string) error {
		return fetch(configPath, envPath, args)
	})

	initFS := flag.NewFlagSet("config", flag.ExitOnError)
	initFS.StringVar(&configPath, "config", config.DefaultPath, "Where to write the default config")
	reg.Register("config", "write the default config file", initFS, func([]string) error {
		return config.Save(configPath, config.Default())
	})

	if err := reg.Execute(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		if errors.Is(err, errLogged) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, commands.ErrUnknown) {
			fmt.Fprintln(os.Stderr, "commands:")
			reg.PrintUsage(os.Stderr)
		}
		os.Exit(1)
	}
}

// setup loads the dotenv file and the config, then builds the logger.
func setup(configPath, envPath string) (config.Config, *logger.Logger, error) {
	envErr := env.Load(envPath)
	envy.Reload()
	cfg, err := config.Load(configPath)

	log := logger.New(cfg.Log.File)
	if envErr != nil {
		log.WithError(envErr).Warn("dotenv not loaded")
	}
	if cfg.Mode.IsDevelopment() {
		log.SetLevel(logrus.DebugLevel)
	}
	if vals, rerr := env.Read(envPath); rerr == nil {
		if v, ok := vals[config.ModeEnvVar]; ok && v == envy.Get(config.ModeEnvVar, "") {
			log.WithFields(logrus.Fields{"file": envPath, "mode": v}).Debug("mode taken from dotenv")
		}
	}
	return cfg, log, err
}

// fatal logs err at fatal level without exiting, so deferred cleanup still runs.
func fatal(log logrus.FieldLogger, err error, msg string) error {
	log.WithError(err).Log(logrus.FatalLevel, msg)
	return errLogged
}

func newLoader(cfg config.Config) material.Loader {
	return material.WithTimeout(material.NewSnippetLoader(cfg.Material.Server, nil), cfg.Material.Timeout)
}

func run(configPath, envPath string, noWindow bool, frames uint64) error {
	cfg, log, err := setup(configPath, envPath)
	defer log.Close()
	if err != nil {
		return fatal(log, err, "config")
	}
	log.WithField("mode", cfg.Mode).Info("starting viewer")

	var host engine.Host
	if noWindow {
		host = headless.New(headless.Config{
			CanvasID: cfg.Window.Canvas,
			Width:    cfg.Window.Width,
			Height:   cfg.Window.Height,
			Hz:       cfg.Headless.Hz,
			Frames:   frames,
		})
	} else {
		host = graphics.New(graphics.Config{
			Title:     cfg.Window.Title,
			Width:     cfg.Window.Width,
			Height:    cfg.Window.Height,
			CanvasID:  cfg.Window.Canvas,
			TargetFPS: cfg.Window.TargetFPS,
			Debug: debug.Options{
				ShowFPS:  cfg.Debug.ShowFPS,
				ShowMem:  cfg.Debug.ShowMem,
				LogLines: cfg.Debug.LogLines,
				History:  log.History.Tail,
				CSSPath:  cfg.Debug.CSS,
				Log:      log,
			},
		})
	}

	viewer := app.New(app.OptionsFromConfig(cfg), host, newLoader(cfg), log)
	defer viewer.Close()
	if err := viewer.Init(); err != nil {
		return fatal(log, err, "init")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := viewer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fatal(log, err, "render loop")
	}
	log.Info("viewer stopped")
	return nil
}

func fetch(configPath, envPath string, args []string) error {
	cfg, log, err := setup(configPath, envPath)
	defer log.Close()
	if err != nil {
		return fatal(log, err, "config")
	}
	id := cfg.Material.Snippet
	if len(args) > 0 {
		id = args[0]
	}

	m, err := newLoader(cfg).Load(context.Background(), id)
	if err != nil {
		return fatal(log.WithField("material", id), err, "fetch")
	}
	log.WithFields(logrus.Fields{
		"material": id,
		"name":     m.Name,
		"shader":   m.HasShader(),
		"diffuse":  fmt.Sprintf("#%02x%02x%02x%02x", m.Diffuse.R, m.Diffuse.G, m.Diffuse.B, m.Diffuse.A),
		"uniforms": len(m.Uniforms),
	}).Info("material")
	return nil
}
