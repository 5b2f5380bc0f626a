package main

import (
	"github.com/urfave/cli/v2"

	decodexmcp "github.com/standardbeagle/decodex/internal/mcp"
)

var mcpCommand = &cli.Command{
	Name:  "mcp",
	Usage: "Serve the \"decode\" tool over MCP stdio, for AI-agent callers",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfigWithOverrides(c)
		if err != nil {
			return err
		}

		newEngine, err := buildEngineFactory(cfg)
		if err != nil {
			return err
		}

		decodexmcp.Version = Version

		ctx, cancel := rootContext()
		defer cancel()

		return decodexmcp.NewServer(newEngine).Run(ctx)
	},
}
