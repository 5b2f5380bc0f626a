package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/decodex/internal/config"
)

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "Configuration management commands",
	Subcommands: []*cli.Command{
		{
			Name:   "init",
			Usage:  "Write a default .decodex.kdl in the project root",
			Action: configInitCommand,
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing config file"},
			},
		},
		{
			Name:   "show",
			Usage:  "Print the resolved configuration",
			Action: configShowCommand,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "format", Value: "kdl", Usage: "Output format: kdl or toml"},
			},
		},
		{
			Name:   "validate",
			Usage:  "Validate the configuration file",
			Action: configValidateCommand,
		},
	},
}

const defaultKDLTemplate = `project {
    root "."
    name "decodex"
}

search {
    deadline_seconds 5
    interactive_confirmation false
    collect_all false
    decoder_batch_size 5
    parallel_batch_size 10
    initial_prune_threshold 10000
    depth_penalty 0.5

    // regex "^[A-Za-z0-9+/=]+$"        // exclusive regex recognizer
    // wordlist_source "wordlists/*.txt"
}
`

func configInitCommand(c *cli.Context) error {
	root := c.String("root")
	if root == "" {
		root = "."
	}
	path := filepath.Join(root, ".decodex.kdl")

	if !c.Bool("force") {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, []byte(defaultKDLTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func configShowCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if c.String("format") == "toml" {
		out, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to render configuration as toml: %w", err)
		}
		os.Stdout.Write(out)
		return nil
	}
	fmt.Print(cfg.Describe())
	return nil
}

func configValidateCommand(c *cli.Context) error {
	root := c.String("root")
	if root == "" {
		root = "."
	}
	cfg, err := config.LoadKDL(root)
	if err != nil {
		fmt.Printf("configuration invalid: %v\n", err)
		return err
	}
	validator := config.NewValidator()
	if err := validator.ValidateAndSetDefaults(cfg); err != nil {
		fmt.Printf("configuration invalid: %v\n", err)
		return err
	}
	fmt.Println("configuration is valid")
	fmt.Print(cfg.Describe())
	return nil
}
