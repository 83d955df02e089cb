// Command shyft looks up a company's annual revenue and net income from the
// terminal, by name (two-step), ticker, or CIK.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/bobmcallan/shyft/internal/app"
	"github.com/bobmcallan/shyft/internal/interfaces"
	"github.com/bobmcallan/shyft/internal/models"
	"github.com/bobmcallan/shyft/internal/services/report"
	"github.com/bobmcallan/shyft/internal/session"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to shyft.toml (default: $SHYFT_CONFIG, then config/shyft.toml)")
		name       = flag.String("name", "", "company name to search for")
		ticker     = flag.String("ticker", "", "exact ticker symbol")
		cik        = flag.String("cik", "", "SEC CIK, with or without the CIK prefix")
		chartPath  = flag.String("chart", "", "write a PNG bar chart to this path")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
		os.Exit(1)
	}

	t := &terminal{
		lookup: a.LookupService,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		chart:  *chartPath,
	}

	var runErr error
	switch {
	case *cik != "":
		runErr = t.byIdentifier(ctx, *cik)
	case *ticker != "":
		runErr = t.byTicker(ctx, *ticker)
	case *name != "":
		runErr = t.byName(ctx, session.New(a.LookupService, a.Logger), *name)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

type terminal struct {
	lookup interfaces.LookupService
	in     *bufio.Reader
	out    io.Writer
	chart  string
}

func (t *terminal) byIdentifier(ctx context.Context, identifier string) error {
	rep, err := t.lookup.GetFinancials(ctx, identifier)
	if err != nil {
		return err
	}
	return t.show(rep)
}

func (t *terminal) byTicker(ctx context.Context, ticker string) error {
	rep, err := t.lookup.GetFinancialsByTicker(ctx, ticker)
	if err != nil {
		return err
	}
	return t.show(rep)
}

// byName runs the two-step flow: search, list candidates, prompt, fetch.
// A failed fetch returns to the prompt with the same candidates.
func (t *terminal) byName(ctx context.Context, s *session.Session, name string) error {
	if _, err := s.Search(ctx, name); err != nil {
		return fmt.Errorf("no matches found for '%s': %w", name, err)
	}

	for {
		candidates := s.Candidates()
		fmt.Fprintf(t.out, "Matched tickers for '%s':\n", strings.TrimSpace(name))
		for i, c := range candidates {
			fmt.Fprintf(t.out, "  %d) %s\n", i+1, c)
		}
		fmt.Fprint(t.out, "Select a ticker (number or symbol, empty to quit): ")

		line, err := t.in.ReadString('\n')
		choice := strings.TrimSpace(line)
		if choice == "" {
			s.Reset()
			return nil
		}
		if n, convErr := strconv.Atoi(choice); convErr == nil && n >= 1 && n <= len(candidates) {
			choice = candidates[n-1]
		}

		st, selErr := s.Select(ctx, choice)
		if done, ok := st.(session.Done); ok {
			return t.show(done.Report)
		}
		fmt.Fprintf(t.out, "Error: %v\n\n", selErr)
		if err != nil || ctx.Err() != nil {
			return selErr
		}
	}
}

func (t *terminal) show(rep *models.FinancialsReport) error {
	fmt.Fprintln(t.out, report.FormatMarkdown(rep))

	if t.chart == "" {
		return nil
	}
	png, err := report.RenderChart(rep.Series)
	if err != nil {
		return err
	}
	if err := os.WriteFile(t.chart, png, 0o644); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	fmt.Fprintf(t.out, "Chart written to %s\n", t.chart)
	return nil
}
