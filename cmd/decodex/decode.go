package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/decodex/internal/cache"
	"github.com/standardbeagle/decodex/internal/config"
	"github.com/standardbeagle/decodex/internal/heuristic"
	"github.com/standardbeagle/decodex/internal/recognize"
	"github.com/standardbeagle/decodex/internal/search"
	"github.com/standardbeagle/decodex/internal/transform"
)

var decodeCommand = &cli.Command{
	Name:    "decode",
	Aliases: []string{"d"},
	Usage:   "Search for a plaintext decoding of an input string",
	Flags: []cli.Flag{
		&cli.IntFlag{Name: "deadline", Usage: "Wall-clock search deadline in seconds (0=use config)"},
		&cli.BoolFlag{Name: "collect-all", Usage: "Keep searching until the deadline, collecting every hit"},
		&cli.BoolFlag{Name: "interactive", Usage: "Fall back to an interactive stdio prompt when no recognizer confirms a candidate"},
		&cli.StringFlag{Name: "regex", Usage: "Exclusive regex recognizer pattern (overrides config)"},
		&cli.StringSliceFlag{Name: "wordlist", Usage: "Glob(s) of wordlist source files (overrides config)"},
		&cli.BoolFlag{Name: "json", Usage: "Output results as JSON"},
		&cli.StringFlag{Name: "cache-dsn", Usage: "Postgres connection string for the persistent L2 cache (optional)"},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 {
			return fmt.Errorf("usage: decodex decode <input>")
		}
		return runDecode(c, c.Args().First())
	},
}

// buildEngineFactory wires config -> recognizer orchestrator -> heuristic
// model -> transform registry -> search.Engine, returning a constructor so
// callers (the decode command, the dashboard server) can build a fresh
// Engine per search without duplicating the wiring.
func buildEngineFactory(cfg *config.Config) (func(mode search.Mode) *search.Engine, error) {
	registry := transform.NewReferenceRegistry()
	model := heuristic.NewModel(registry.Descriptor, cfg.Search.DepthPenalty)

	var opts []recognize.Option

	if cfg.Search.Regex != "" {
		regexRecognizer, err := recognize.NewRegexRecognizer(cfg.Search.Regex)
		if err != nil {
			return nil, fmt.Errorf("invalid regex recognizer: %w", err)
		}
		opts = append(opts, recognize.WithRegex(regexRecognizer))
	}

	if len(cfg.Search.WordlistSource) > 0 {
		wordlistRecognizer, err := recognize.NewWordlistRecognizer(cfg.Search.WordlistSource)
		if err != nil {
			return nil, fmt.Errorf("invalid wordlist recognizer: %w", err)
		}
		opts = append(opts, recognize.WithWordlist(wordlistRecognizer))
	}

	opts = append(opts, recognize.WithPatternLibrary(recognize.NewPatternLibraryRecognizer()))
	opts = append(opts, recognize.WithEnglishClassifier(recognize.NewEnglishClassifier(nil)))

	if cfg.Search.InteractiveConfirmation {
		prompter := recognize.NewStdioPrompter(os.Stdin, os.Stdout)
		opts = append(opts, recognize.WithInteractive(recognize.NewInteractiveRecognizer(prompter)))
	}

	var cipherNames []string
	for _, t := range registry.All() {
		d := transform.Descriptor(t)
		if !d.IsEncoder() {
			cipherNames = append(cipherNames, d.Name)
		}
	}
	opts = append(opts, recognize.WithCipherNames(cipherNames))

	if len(cfg.Search.EnglishSensitivityOverrides) > 0 {
		overrides := make(map[string]recognize.Sensitivity, len(cfg.Search.EnglishSensitivityOverrides))
		for name, value := range cfg.Search.EnglishSensitivityOverrides {
			overrides[name] = recognize.Sensitivity(value)
		}
		opts = append(opts, recognize.WithSensitivityOverrides(overrides))
	}

	orchestrator := recognize.NewOrchestrator(opts...)

	return func(mode search.Mode) *search.Engine {
		return search.New(search.Config{
			Mode:                  mode,
			Deadline:              time.Duration(cfg.Search.DeadlineSeconds) * time.Second,
			DecoderBatchSize:      cfg.Search.DecoderBatchSize,
			ParallelBatchSize:     cfg.Search.ParallelBatchSize,
			InitialPruneThreshold: cfg.Search.InitialPruneThreshold,
			Registry:              registry,
			Model:                 model,
			Recognizer:            orchestrator,
		})
	}, nil
}

func runDecode(c *cli.Context, input string) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	newEngine, err := buildEngineFactory(cfg)
	if err != nil {
		return err
	}

	mode := search.ModeSingleShot
	if cfg.Search.CollectAll {
		mode = search.ModeCollectAll
	}

	ctx, cancel := rootContext()
	defer cancel()

	var lookaside *cache.Lookaside
	if dsn := c.String("cache-dsn"); dsn != "" {
		store, err := cache.Connect(ctx, dsn)
		if err != nil {
			return fmt.Errorf("failed to connect cache: %w", err)
		}
		defer store.Close()
		if err := store.InitSchema(ctx); err != nil {
			return fmt.Errorf("failed to init cache schema: %w", err)
		}
		lookaside = cache.NewLookaside(store)
	} else {
		lookaside = cache.NewLookaside(nil)
	}

	if entry, ok := lookaside.Lookup(ctx, input); ok {
		return printResults(c, []search.Result{{Text: entry.DecodedText, Chain: entry.Chain}}, search.Stats{})
	}

	start := time.Now()
	engine := newEngine(mode)
	results, stats, err := engine.Run(ctx, input)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	elapsed := time.Since(start)

	for _, r := range results {
		recognizerName := ""
		if len(r.Chain) > 0 {
			recognizerName = r.Chain[len(r.Chain)-1].RecognizerName
		}
		entry := cache.NewEntry(input, r.Text, recognizerName, "", r.Chain, elapsed)
		if storeErr := lookaside.Store(ctx, entry); storeErr != nil {
			fmt.Fprintf(os.Stderr, "decodex: warning: failed to store cache entry: %v\n", storeErr)
		}
	}

	return printResults(c, results, stats)
}

func printResults(c *cli.Context, results []search.Result, stats search.Stats) error {
	if c.Bool("json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]interface{}{
			"results": results,
			"stats":   stats,
		})
	}

	if len(results) == 0 {
		fmt.Println("no plaintext found before the deadline")
		return nil
	}

	for _, r := range results {
		fmt.Printf("%s\n", r.Text)
		for i, step := range r.Chain {
			fmt.Printf("  %d. %s\n", i+1, step.TransformationName)
		}
	}
	return nil
}
