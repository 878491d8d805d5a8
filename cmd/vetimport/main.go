// vetimport loads the drug knowledge base from a CSV/XLSX file into a
// Redis or Valkey snapshot that vetdex reads with catalog.source=redis.
//
// Использование:
//
//	vetimport -file data/drugs.csv -separator ';'
//	vetimport -file data/drugs.xlsx -sheet "Лист1" -dry-run
//
// Env vars:
//
//	REDIS_ADDR     адрес Redis/Valkey (default: localhost:6379)
//	REDIS_PASSWORD пароль
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	dbRedis "github.com/kailas-cloud/vetdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/vetdex/internal/logger"
	"github.com/kailas-cloud/vetdex/internal/repository/catalog"
	drugrepo "github.com/kailas-cloud/vetdex/internal/repository/drug"
	"github.com/kailas-cloud/vetdex/internal/repository/tabular"
	"github.com/kailas-cloud/vetdex/internal/version"
)

type config struct {
	file      string
	separator string
	encoding  string
	sheet     string
	prefix    string
	timeout   time.Duration
	dryRun    bool
	logLevel  string
	version   bool
}

func main() {
	cfg := parseFlags()
	if cfg.version {
		fmt.Println(version.String())
		return
	}

	logger, err := logpkg.NewLogger("local", cfg.logLevel)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		cancel()
		logger.Fatal("import failed", zap.Error(err))
	}
}

func parseFlags() config {
	cfg := config{}
	flag.StringVar(&cfg.file, "file", "data/drugs.csv", "knowledge base file (.csv, .tsv, .xlsx)")
	flag.StringVar(&cfg.separator, "separator", ",", "CSV separator")
	flag.StringVar(&cfg.encoding, "encoding", tabular.EncodingUTF8, "CSV encoding: utf-8 or windows-1251")
	flag.StringVar(&cfg.sheet, "sheet", "", "XLSX sheet (default: first)")
	flag.StringVar(&cfg.prefix, "prefix", "vetdex:", "Redis key prefix")
	flag.DurationVar(&cfg.timeout, "timeout", 10*time.Second, "database readiness timeout")
	flag.BoolVar(&cfg.dryRun, "dry-run", false, "parse the file and report without writing")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "log level")
	flag.BoolVar(&cfg.version, "version", false, "print build version and exit")
	flag.Parse()
	return cfg
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	start := time.Now()

	sep, size := utf8.DecodeRuneInString(cfg.separator)
	if size == 0 || size != len(cfg.separator) {
		return fmt.Errorf("separator must be a single character, got %q", cfg.separator)
	}

	records, report, err := tabular.LoadFile(cfg.file, tabular.Options{
		Separator: sep,
		Encoding:  cfg.encoding,
		Sheet:     cfg.sheet,
	})
	if err != nil {
		return fmt.Errorf("read %s: %w", cfg.file, err)
	}
	logger.Info("file parsed",
		zap.String("file", cfg.file),
		zap.Int("rows", report.Rows),
		zap.Int("loaded", report.Loaded),
		zap.Int("skipped_blank_name", report.SkippedBlankName),
		zap.Strings("ignored_columns", report.IgnoredColumns),
	)

	// Same validation the server applies on startup.
	cat, err := catalog.New(records)
	if err != nil {
		return fmt.Errorf("validate records: %w", err)
	}
	if dup := cat.Len() - cat.UniqueNames(); dup > 0 {
		logger.Warn("duplicate drug names, exact-name lookup returns the first", zap.Int("duplicates", dup))
	}

	if cfg.dryRun {
		logger.Info("dry run, nothing written", zap.Duration("elapsed", time.Since(start)))
		return nil
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    []string{env("REDIS_ADDR", "localhost:6379")},
		Password: env("REDIS_PASSWORD", ""),
	})
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, cfg.timeout); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	repo := drugrepo.New(store, cfg.prefix)
	if err := repo.Save(ctx, cat.All()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	// read back to catch a partial write
	loaded, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("verify snapshot: %w", err)
	}
	if len(loaded) != cat.Len() {
		return errors.New("verify snapshot: record count mismatch")
	}

	logger.Info("snapshot written",
		zap.Int("records", len(loaded)),
		zap.String("prefix", cfg.prefix),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
