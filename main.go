package main

import (
	"context"
	stdlog "log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rubiojr/gss/cmd"
	"github.com/rubiojr/gss/pkg/config"
	"github.com/rubiojr/gss/pkg/log"
	"github.com/urfave/cli/v3"
)

func main() {
	// A .env in the working directory may hold GSS_* settings or the key.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			stdlog.Fatalf("Failed to load .env: %v", err)
		}
	}

	app := &cli.Command{
		Name:  "gss",
		Usage: "Search a Google Programmable Search Engine from the terminal or over HTTP",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "debug-services",
				Usage: "Comma separated services to debug (search, customsearch, api, http)",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Write logs as JSON lines",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path (.toml or .yaml)",
				Value: getDefaultConfigPathOrExit(),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			log.SetJSON(c.Bool("log-json"))
			log.SetGlobalDebug(c.Bool("debug"))
			for _, name := range strings.Split(c.String("debug-services"), ",") {
				if name = strings.TrimSpace(name); name != "" {
					log.EnableDebugFor(name)
				}
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmd.InitCommand(),
			cmd.SearchCommand(),
			cmd.ServeCommand(),
			cmd.VersionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		stdlog.Fatal(err)
	}
}

func getDefaultConfigPathOrExit() string {
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		stdlog.Fatalf("Failed to get default config path: %v", err)
	}
	return path
}
