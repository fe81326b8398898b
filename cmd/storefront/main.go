// Command storefront serves the shop and manages its database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "storefront",
		Usage: "storefront web application",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server and background workers",
				Action: serveAction,
			},
			{
				Name:   "migrate",
				Usage:  "apply database and job queue migrations",
				Action: migrateAction,
			},
			{
				Name:  "seed",
				Usage: "load products and synthetic orders from a YAML file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "seed file",
						Value:    "seed.yaml",
					},
				},
				Action: seedAction,
			},
		},
	}
}
