package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/decodex/internal/apiserver"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Start the optional read-only dashboard (REST + websocket) over collect-all searches",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "addr",
			Usage: "Address to listen on",
			Value: ":8765",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfigWithOverrides(c)
		if err != nil {
			return err
		}
		// The dashboard always runs collect-all searches regardless of the
		// submitted job's config, since its purpose is to watch every
		// confirmation land rather than stop at the first.
		cfg.Search.CollectAll = true

		newEngine, err := buildEngineFactory(cfg)
		if err != nil {
			return err
		}

		srv := apiserver.NewServer(newEngine)
		router := srv.Router()

		addr := c.String("addr")
		fmt.Printf("decodex dashboard listening on %s\n", addr)
		return router.Run(addr)
	},
}
