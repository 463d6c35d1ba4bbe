package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"draftboard-engine/internal/domain"
	"draftboard-engine/internal/records"
)

// DefaultConcurrency bounds parallel reads in Combine.
const DefaultConcurrency = 4

type Options struct {
	Concurrency int
	Fetcher     *Fetcher
}

// FileResult reports what one input contributed.
type FileResult struct {
	Input string `json:"input"`
	Year  string `json:"year"`
	Rows  int    `json:"rows"`
}

type Result struct {
	Picks []domain.Pick
	Files []FileResult
}

// Combine reads every input in parallel and concatenates the cleaned rows
// in input order. The first failing input cancels the rest.
func Combine(ctx context.Context, inputs []string, opts Options) (Result, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Fetcher == nil {
		opts.Fetcher = NewFetcher()
	}

	parts := make([][]domain.Pick, len(inputs))
	files := make([]FileResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, in := range inputs {
		g.Go(func() error {
			raw, err := opts.Fetcher.readRaw(gctx, in)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}
			year := YearFromName(inputName(in))
			picks := make([]domain.Pick, 0, len(raw))
			for _, r := range raw {
				picks = append(picks, CleanRow(r, year))
			}
			parts[i] = picks
			files[i] = FileResult{Input: in, Year: year, Rows: len(picks)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	out := Result{Picks: []domain.Pick{}, Files: files}
	for _, p := range parts {
		out.Picks = append(out.Picks, p...)
	}
	return out, nil
}

// Discover lists the per-year exports in dir: mlb_draft_*complete*.csv or
// .html, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "mlb_draft_") || !strings.Contains(name, "complete") {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".csv", ".html", ".htm":
			out = append(out, filepath.Join(dir, name))
		}
	}
	sort.Strings(out)
	return out, nil
}

// WriteCleanCSV writes picks to path through a temp file.
func WriteCleanCSV(path string, picks []domain.Pick) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := records.WriteCSV(f, picks); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
