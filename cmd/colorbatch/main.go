// Command colorbatch converts a file of colors, one per line, into one
// color space. Lines are converted in parallel and printed in input order.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"golang.org/x/exp/mmap"
	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/colorpick/colors"
	"github.com/echoflaresat/colorpick/config"
)

type result struct {
	line int
	text string
	err  error
}

func main() {
	to := flag.String("to", "", "Target color space (default from config)")
	workers := flag.Int("workers", 0, "Parallel conversions (default from config, 0 means one per CPU)")
	configPath := flag.String("config", config.DefaultPath(), "Config file path")
	verbose := flag.Bool("v", false, "Log debug messages to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  %s [options] <file>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	colors.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *to != "" {
		cfg.Space = *to
	}
	if *workers != 0 {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reader, err := mmap.Open(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	defer reader.Close()

	src := io.NewSectionReader(reader, 0, int64(reader.Len()))
	results, err := convert(ctx, src, cfg.TargetSpace(), cfg.Workers)
	if err != nil {
		log.Fatal(err)
	}
	if failed := report(os.Stdout, os.Stderr, results); failed > 0 {
		os.Exit(1)
	}
}

// convert parses every non-blank line of r and converts it to target,
// running at most workers conversions at once. Results keep input order.
// Only cancellation of ctx or a read error fails the whole run; bad lines
// are reported in their result.
func convert(ctx context.Context, r io.Reader, target colors.Space, workers int) ([]result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	results := make([]result, len(lines))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, line := range lines {
		text := strings.TrimSpace(line)
		results[i].line = i + 1
		if text == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := colors.Parse(text)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].text = c.Convert(target).String()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// report prints converted lines to out and failures to errw, returning the
// number of failures.
func report(out, errw io.Writer, results []result) int {
	failed := 0
	for _, r := range results {
		switch {
		case r.err != nil:
			failed++
			fmt.Fprintf(errw, "line %d: %v\n", r.line, r.err)
		case r.text != "":
			fmt.Fprintln(out, r.text)
		}
	}
	return failed
}
