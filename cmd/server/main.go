package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/DuyDuc2014/l-ch/internal/backup"
	"github.com/DuyDuc2014/l-ch/internal/config"
	"github.com/DuyDuc2014/l-ch/internal/logging"
	"github.com/DuyDuc2014/l-ch/internal/server"
	"github.com/DuyDuc2014/l-ch/internal/store"
)

func main() {
	configFile := flag.String("config", "", "Path to a config file (json or yaml)")

	// Flags override file and environment values.
	flagAddr := flag.String("addr", "", "Listen address")
	flagLogLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	flagLogFormat := flag.String("log-format", "", "Log format (text, json)")
	flagDB := flag.String("db", "", "Database path (default ~/.lich/lich.db)")
	flagBackupDir := flag.String("backup-dir", "", "Local directory for state snapshots")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *flagAddr != "" {
		cfg.Addr = *flagAddr
	}
	if *flagLogLevel != "" {
		cfg.LogLevel = *flagLogLevel
	}
	if *flagLogFormat != "" {
		cfg.LogFormat = *flagLogFormat
	}
	if *flagDB != "" {
		cfg.DBPath = *flagDB
	}
	if *flagBackupDir != "" {
		cfg.Backup.Dir = *flagBackupDir
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)

	// Resolve database path.
	dbPath := cfg.DBPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".lich")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		dbPath = filepath.Join(dir, "lich.db")
	}

	// Open store and run migrations.
	st, err := store.NewSQLiteStore(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", dbPath)

	// Assemble backup targets.
	var targets []backup.Target
	if cfg.Backup.Dir != "" {
		targets = append(targets, backup.NewDirTarget(cfg.Backup.Dir))
		logger.Info("backup target configured", "dir", cfg.Backup.Dir)
	}
	if cfg.Backup.S3Bucket != "" {
		s3Target, err := backup.NewS3Target(context.Background(), cfg.Backup.S3Bucket, cfg.Backup.S3Prefix)
		if err != nil {
			fmt.Fprintf(os.Stderr, "configure s3 backup: %v\n", err)
			os.Exit(1)
		}
		targets = append(targets, s3Target)
		logger.Info("backup target configured", "bucket", cfg.Backup.S3Bucket, "prefix", cfg.Backup.S3Prefix)
	}

	var serverOpts []server.Option
	if len(targets) > 0 {
		serverOpts = append(serverOpts, server.WithBackupRunner(backup.NewRunner(st, targets, logger)))
	}

	srv := server.New(cfg, st, logger, serverOpts...)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
