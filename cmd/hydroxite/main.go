package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hydroxite/hydroxite"
	"github.com/hydroxite/hydroxite/internal/app"
	"github.com/hydroxite/hydroxite/internal/clipboard"
	"github.com/hydroxite/hydroxite/internal/config"
	applog "github.com/hydroxite/hydroxite/internal/log"
	"github.com/hydroxite/hydroxite/internal/watch"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "hydroxite: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file (default: <user config dir>/hydroxite/config.toml)")
	vimMode := flag.Bool("vim", false, "start with Vim mode enabled")
	themeName := flag.String("theme", "", "theme name, overrides the config file")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: hydroxite [flags] [file or folder]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Println("hydroxite", hydroxite.VersionTag())
		return nil
	}
	if flag.NArg() > 1 {
		flag.Usage()
		return fmt.Errorf("expected at most one path, got %d", flag.NArg())
	}

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if *vimMode {
		cfg.Vim.Enabled = true
	}
	if *themeName != "" {
		cfg.Theme = *themeName
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logFile := cfg.Log.File
	if logFile == "" {
		// Without a cache dir logging is discarded.
		logFile, _ = config.DefaultLogFile()
	}
	if err := applog.Configure(applog.Config{Level: cfg.Log.Level, File: logFile}); err != nil {
		return err
	}
	defer func() { _ = applog.Close() }()
	logger := applog.WithComponent("app")
	logger.Info().
		Str("event", "startup").
		Str("version", hydroxite.Version()).
		Str("config", path).
		Msg("starting")

	holder := config.NewHolder(cfg, path, applog.WithComponent("config"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := holder.StartWatcher(ctx, watch.DefaultDebounce); err != nil {
		logger.Warn().Err(err).Str("event", "config.watch_failed").Msg("config reload disabled")
	}
	defer holder.Stop()

	m, err := app.New(app.Options{
		Config:    cfg,
		Holder:    holder,
		Path:      flag.Arg(0),
		Clipboard: clipboard.New(applog.WithComponent("clipboard")),
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	logger.Info().Str("event", "shutdown").Msg("bye")
	return nil
}
