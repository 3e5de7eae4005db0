package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/absentee/internal/config"
	"github.com/sadopc/absentee/internal/demo"
	"github.com/sadopc/absentee/internal/metrics"
	"github.com/sadopc/absentee/internal/store"
	"github.com/sadopc/absentee/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	logFile, err := setupLogging(cfg, dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()
	logrus.WithField("db", dbPath).Info("database opened")

	if cfg.SeedDemo {
		now := time.Now()
		rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), 0))
		if _, err := demo.SeedIfEmpty(s, rng, now); err != nil {
			logrus.WithError(err).Warn("demo seeding failed")
		}
	}

	app := tui.NewApp(s, cfg.ExportDir)
	p := tea.NewProgram(app, tea.WithAltScreen())

	// Store notifications fire on the writer's goroutine, which is the
	// program's own command goroutine, so Send must not block it.
	unsubscribe := s.Subscribe(func(store.Change) {
		go p.Send(tui.DataChangedMsg{})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		logrus.WithError(err).Error("program exited")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			logrus.WithError(err).Error("write metrics")
		}
	}
}

// setupLogging sends logrus output to a file, since the terminal belongs
// to the TUI. The default file sits next to the database.
func setupLogging(cfg *config.Config, dbPath string) (*os.File, error) {
	path := cfg.LogFile
	if path == "" {
		path = filepath.Join(filepath.Dir(dbPath), "absentee.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	logrus.SetOutput(f)
	logrus.SetLevel(cfg.LogLevel)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return f, nil
}
