// Command itinparse parses markdown itinerary files into JSON, one object
// per line, in argument order.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"driftly/internal/adapters/observability"
	"driftly/internal/domain"
	"driftly/internal/itinerary"
	"driftly/internal/shared"
)

type result struct {
	File    string                  `json:"file"`
	Days    []domain.Day            `json:"days,omitempty"`
	Summary *domain.Summary         `json:"summary,omitempty"`
	Ignored []itinerary.IgnoredLine `json:"ignored,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLoggerTo(os.Stderr, cfg.AppEnv, cfg.LogLevel)

	workers := flag.Int("workers", cfg.ParseWorkers, "max files parsed concurrently")
	pretty := flag.Bool("pretty", false, "indent JSON output")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: itinparse [-workers N] [-pretty] file...")
		os.Exit(2)
	}

	results := parseFiles(context.Background(), flag.Args(), *workers)
	if err := write(os.Stdout, results, *pretty); err != nil {
		log.Fatal().Err(err).Msg("write output failed")
	}
	for _, r := range results {
		if r.Error != "" {
			os.Exit(1)
		}
	}
}

// parseFiles reads and parses each file with at most workers in flight.
// Results keep the order of files.
func parseFiles(ctx context.Context, files []string, workers int) []result {
	if workers <= 0 {
		workers = 1
	}
	out := make([]result, len(files))
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup

	for i, f := range files {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			out[i] = result{File: f, Error: err.Error()}
			continue
		}
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer sem.Release(1)
			out[i] = parseFile(path)
		}(i, f)
	}

	wg.Wait()
	return out
}

func parseFile(path string) result {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Str("file", path).Err(err).Msg("read failed")
		return result{File: path, Error: err.Error()}
	}
	r := itinerary.ParseReport(string(b))
	sum := itinerary.Stats(r.Days)
	log.Debug().Str("file", path).Int("days", sum.Days).Int("ignored", len(r.Ignored)).Msg("parsed")
	return result{File: path, Days: r.Days, Summary: &sum, Ignored: r.Ignored}
}

func write(w io.Writer, results []result, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
