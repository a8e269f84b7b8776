package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rubiojr/gss/pkg/config"
	"github.com/urfave/cli/v3"
)

// InitCommand creates the init command
func InitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Initialize configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "engine-id",
				Usage: "Programmable Search Engine ID to write into the configuration",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing configuration file",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return initConfig(c.String("config"), c.String("engine-id"), c.Bool("force"))
		},
	}
}

// initConfig initializes the configuration file
func initConfig(configPath, engineID string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", configPath)
	}

	cfg := config.GetDefaultConfig()
	cfg.Search.SearchEngineID = engineID
	if err := cfg.SaveTemplateConfig(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("Configuration initialized at %s\n", configPath)
	return nil
}
