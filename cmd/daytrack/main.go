package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"daytrack/app"
	"daytrack/config"
	"daytrack/logging"
	"daytrack/store"
	"daytrack/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "daytrack: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config.toml (default: per-user config dir)")
	flag.Parse()

	path := *configPath
	if path == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, config.DefaultConfigFileName)
	}

	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := logging.Init(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Info("store ready", "backend", cfg.Backend)

	svc := app.NewService(st)
	client := &http.Client{Timeout: 15 * time.Second}

	m := tui.NewModel(svc, client, cfg.ResourcesURL, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func openStore(cfg config.Config) (store.Store, func() error, error) {
	if cfg.Backend == config.BackendSQLite {
		s, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return s, s.Close, nil
	}
	return store.NewFileStore(cfg.StatePath), func() error { return nil }, nil
}
