package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rubiojr/gss/pkg/api"
	"github.com/rubiojr/gss/pkg/locale"
	"github.com/rubiojr/gss/pkg/search"
	"github.com/urfave/cli/v3"
)

// Define styles using lipgloss
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	resultTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Margin(0, 0, 1, 0)

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the configured engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "query",
				Aliases:  []string{"q"},
				Usage:    "Search keywords",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Zero-based results page",
				Value: 0,
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Interface language (BCP 47), defaults to locale.default",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the API response as JSON",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return searchKeywords(ctx, os.Stdout, c.String("config"), c.String("query"), c.Int("page"), c.String("lang"), c.Bool("json"))
		},
	}
}

// searchKeywords runs one search and prints it
func searchKeywords(ctx context.Context, w io.Writer, configPath, query string, page int, lang string, asJSON bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	searcher, err := newSearcher(cfg)
	if err != nil {
		return err
	}

	outcome, err := searcher.Search(locale.WithLanguage(ctx, lang), query, page)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(api.NewSearchResponse(outcome, searcher.PageSize(), searcher.PagerSize()))
	}

	printOutcome(w, outcome, searcher.PageSize(), searcher.PagerSize())
	return nil
}

func printOutcome(w io.Writer, outcome *search.Outcome, pageSize, pagerSize int) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Results for %q", outcome.Keywords)))

	if outcome.Err != nil {
		fmt.Fprintln(w, noticeStyle.Render("Search API error, results may be incomplete: "+outcome.Err.Error()))
	}
	if outcome.FellBack() {
		fmt.Fprintln(w, noticeStyle.Render(fmt.Sprintf("Page %d has no results; showing page %d.", outcome.RequestedPage, outcome.Page)))
	}

	if len(outcome.Results) == 0 {
		fmt.Fprintln(w, noDataStyle.Render("No results found."))
		return
	}

	fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("%s (page %d)", resultsLine(outcome.Total, len(outcome.Results)), outcome.Page)))
	fmt.Fprintln(w)

	offset := outcome.Page * pageSize
	for i, r := range outcome.Results {
		fmt.Fprintf(w, "%3d. %s\n", offset+i+1, resultTitleStyle.Render(r.Title))
		fmt.Fprintf(w, "     %s\n", urlStyle.Render(r.Link))
		if snippet := plainSnippet(string(r.Snippet)); snippet != "" {
			fmt.Fprintf(w, "     %s\n", snippet)
		}
		fmt.Fprintln(w)
	}

	if links := search.LabelLinks(outcome.Keywords, outcome.Labels()); len(links) > 0 {
		labels := make([]string, len(links))
		for i, l := range links {
			labels[i] = fmt.Sprintf("%s (%q)", l.Text, l.Query)
		}
		fmt.Fprintln(w, metaStyle.Render("Refine: "+strings.Join(labels, ", ")))
	}

	pager := outcome.Pager(pageSize, pagerSize)
	if pager.TotalPages > 1 {
		fmt.Fprintln(w, metaStyle.Render(fmt.Sprintf("Pages %d-%d of %d (use --page)", pager.First(), pager.Last(), pager.TotalPages)))
	}
}
