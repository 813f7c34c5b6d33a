package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/CTAG07/chaingen/pkg/corpus"
	"github.com/CTAG07/chaingen/pkg/markov"
	"github.com/natefinch/atomic"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// runOptions carries the command line flags into run.
type runOptions struct {
	configPath string
	ingestPath string
	outPath    string
}

func main() {
	var opts runOptions
	flag.StringVar(&opts.configPath, "config", "./chaingen.json", "path to the JSON config file, created with defaults if missing")
	flag.StringVar(&opts.ingestPath, "ingest", "", "add the words of a text file to the corpus before training")
	flag.StringVar(&opts.outPath, "out", "", "write generated words to this file instead of stdout")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("chaingen %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		return
	}

	baseLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout, os.Stderr); err != nil {
		baseLogger.Error("chaingen failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// run loads the config, prepares the corpus, trains a model and writes the
// generated words to stdout or to opts.outPath.
func run(ctx context.Context, opts runOptions, stdout, logOut io.Writer) error {
	config, err := LoadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err = config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))

	db, err := initDB(config.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	if err = corpus.SetupSchema(db); err != nil {
		return fmt.Errorf("failed to setup corpus schema: %w", err)
	}

	store, err := corpus.NewStore(db, corpus.NewTokenizer(corpus.WithMinLength(config.Corpus.MinWordLength)))
	if err != nil {
		return fmt.Errorf("error creating corpus store: %w", err)
	}
	defer store.Close()
	store.SetLogger(logger)

	entries, err := loadCorpus(ctx, store, config.Corpus, opts.ingestPath)
	if err != nil {
		return err
	}

	gen := config.Generation
	model, err := markov.TrainText(gen.MaxOrder, entries, markov.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to train model: %w", err)
	}
	stats := model.Model().Stats()
	logger.Info("Model ready",
		"corpus", config.Corpus.Name,
		"entries", len(entries),
		"contexts", stats.Contexts,
		"transitions", stats.Transitions,
		"starting_symbols", stats.StartingSymbols,
	)

	seed := gen.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Debug("Seeding random source", "seed", seed)
	r := rand.New(rand.NewPCG(seed, seed))

	var buf bytes.Buffer
	if err = writeGenerated(ctx, &buf, model, r, gen); err != nil {
		return err
	}

	if opts.outPath != "" {
		if err = atomic.WriteFile(opts.outPath, &buf); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("Output written", "path", opts.outPath)
		return nil
	}
	_, err = buf.WriteTo(stdout)
	return err
}

// loadCorpus returns the configured corpus, creating it and seeding it with
// the built-in entries when it is empty, after ingesting ingestPath if set.
func loadCorpus(ctx context.Context, store *corpus.Store, cfg *CorpusConfig, ingestPath string) ([]string, error) {
	info, err := store.GetOrCreateCorpus(ctx, cfg.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus '%s': %w", cfg.Name, err)
	}

	if ingestPath != "" {
		f, err := os.Open(ingestPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open ingest file: %w", err)
		}
		_, err = store.Ingest(ctx, info, f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to ingest '%s': %w", ingestPath, err)
		}
	}

	entries, err := store.Entries(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus '%s': %w", cfg.Name, err)
	}
	if len(entries) == 0 && cfg.SeedDefaults {
		if _, err = store.AddEntries(ctx, info, corpus.DefaultEntries); err != nil {
			return nil, fmt.Errorf("failed to seed corpus '%s': %w", cfg.Name, err)
		}
		if entries, err = store.Entries(ctx, info); err != nil {
			return nil, fmt.Errorf("failed to load corpus '%s': %w", cfg.Name, err)
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("corpus '%s' is empty", cfg.Name)
	}
	return entries, nil
}

// writeGenerated writes a block of gen.Count words for every configured order.
func writeGenerated(ctx context.Context, w io.Writer, model *markov.TextModel, r markov.Rand, gen *GenerationConfig) error {
	for _, order := range gen.Orders {
		if _, err := fmt.Fprintf(w, "---- Order: %d\n", order); err != nil {
			return err
		}
		for i := 0; i < gen.Count; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			word, err := model.Generate(r, order, gen.MaxLength)
			if err != nil {
				return fmt.Errorf("failed to generate at order %d: %w", order, err)
			}
			if _, err = fmt.Fprintf(w, "%q\n", word); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
