// Command decodex runs the automated multi-layer decode search against an
// input string, either printing the first confirmed plaintext or, in
// collect-all mode, every plaintext found before the deadline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/decodex/internal/config"
)

var Version = "dev"

// loadConfigWithOverrides loads the KDL config from the project root
// given by --root (the --config flag is not read) and applies CLI flag
// overrides, in the same
// shape as the teacher's cmd/lci loadConfigWithOverrides.
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	root := c.String("root")
	if root == "" {
		root = "."
	}

	cfg, err := config.LoadKDL(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", filepath.Join(root, ".decodex.kdl"), err)
	}

	if deadline := c.Int("deadline"); deadline > 0 {
		cfg.Search.DeadlineSeconds = deadline
	}
	if c.Bool("collect-all") {
		cfg.Search.CollectAll = true
	}
	if c.Bool("interactive") {
		cfg.Search.InteractiveConfirmation = true
	}
	if regex := c.String("regex"); regex != "" {
		cfg.Search.Regex = regex
	}
	if wordlists := c.StringSlice("wordlist"); len(wordlists) > 0 {
		cfg.Search.WordlistSource = wordlists
	}

	validator := config.NewValidator()
	if err := validator.ValidateAndSetDefaults(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// rootContext returns a context cancelled on SIGINT/SIGTERM, so a running
// search unwinds via its own deadline plumbing rather than an abrupt kill.
func rootContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx, cancel
}

func main() {
	app := &cli.App{
		Name:    "decodex",
		Usage:   "Automated multi-layer decode search",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root to look for .decodex.kdl (overrides default)",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Config file path (not read; the config is always loaded from --root's .decodex.kdl)",
				Value: ".decodex.kdl",
			},
		},
		Commands: []*cli.Command{
			decodeCommand,
			serveCommand,
			mcpCommand,
			configCommand,
		},
		Action: func(c *cli.Context) error {
			if c.NArg() > 0 {
				return runDecode(c, c.Args().First())
			}
			return cli.ShowAppHelp(c)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "decodex: %v\n", err)
		os.Exit(1)
	}
}
