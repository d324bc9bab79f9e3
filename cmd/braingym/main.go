package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/conorfennell/braingym/internal/config"
	"github.com/conorfennell/braingym/internal/sources"
	"github.com/conorfennell/braingym/internal/storage"
	"github.com/conorfennell/braingym/internal/web"
)

func main() {
	fs := config.Flags()
	if err := fs.Parse(os.Args[1:]); err != nil {
		slog.Error("failed to parse flags", "error", err)
		os.Exit(1)
	}

	// braingym.yml next to the binary works without --config.
	if cfgPath, _ := fs.GetString("config"); cfgPath == "" && config.FileExists("braingym.yml") {
		_ = fs.Set("config", "braingym.yml")
	}

	cfg, err := config.Load(fs)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg.LogLevel)

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	seeded, err := db.SeedIfEmpty(time.Now())
	if err != nil {
		slog.Error("failed to seed sample decks", "error", err)
		os.Exit(1)
	}
	if seeded {
		slog.Info("seeded sample decks and templates")
	}

	// One-shot modes: register a source, or sync everything, then exit.
	if path, _ := fs.GetString("add-source"); path != "" {
		addSource(db, path)
		return
	}
	if doSync, _ := fs.GetBool("sync"); doSync {
		if err := sources.RunSync(context.Background(), db, cfg.ReposDir, time.Now()); err != nil {
			slog.Error("sync failed", "error", err)
			os.Exit(1)
		}
		return
	}

	server, err := web.NewServer(db, cfg.ReposDir, speechAnnouncer())
	if err != nil {
		slog.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	slog.Info("listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func addSource(db *storage.DB, path string) {
	existing, err := db.FindSourceByPath(path)
	if err != nil {
		slog.Error("failed to look up source", "path", path, "error", err)
		os.Exit(1)
	}
	if existing != nil {
		slog.Info("source already registered", "path", path)
		return
	}
	kind := sources.KindFor(path)
	if _, err := db.InsertSource(path, kind); err != nil {
		slog.Error("failed to register source", "path", path, "error", err)
		os.Exit(1)
	}
	slog.Info("source registered", "path", path, "kind", kind)
}

// execAnnouncer shells out to a local text-to-speech command. Speech is
// best-effort: failures are logged and never block a request.
type execAnnouncer struct {
	command string
}

func (a execAnnouncer) Say(text string) {
	go func() {
		if err := exec.Command(a.command, text).Run(); err != nil {
			slog.Debug("speech command failed", "command", a.command, "error", err)
		}
	}()
}

// speechAnnouncer finds a text-to-speech command on this machine, or
// returns nil when none exists.
func speechAnnouncer() web.Announcer {
	for _, candidate := range []string{"say", "espeak", "spd-say"} {
		if _, err := exec.LookPath(candidate); err == nil {
			return execAnnouncer{command: candidate}
		}
	}
	slog.Debug("no text-to-speech command found, voice disabled")
	return nil
}
