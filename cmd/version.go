package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/rubiojr/gss/pkg/customsearch"
	"github.com/rubiojr/gss/pkg/version"
	"github.com/urfave/cli/v3"
)

// VersionCommand creates the version command
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "short",
				Usage: "Print only the version number",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			printVersion(os.Stdout, c.Bool("short"))
			return nil
		},
	}
}

func printVersion(w io.Writer, short bool) {
	if short {
		fmt.Fprintln(w, version.APIVersion())
		return
	}
	fmt.Fprintln(w, version.BuildVersion())
	fmt.Fprintf(w, "  go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(w, "  user agent: %s\n", version.UserAgent())
	fmt.Fprintf(w, "  endpoint:   %s (max %d results per query)\n", customsearch.DefaultBaseURL, customsearch.MaxResults)
}
