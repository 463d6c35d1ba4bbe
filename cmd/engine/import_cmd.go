package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"draftboard-engine/internal/config"
	"draftboard-engine/internal/ingest"
)

type importOpts struct {
	out         string
	dir         string
	concurrency int
	rate        float64
}

func newImportCmd(g *globalOpts) *cobra.Command {
	var o importOpts
	cmd := &cobra.Command{
		Use:   "import [file or url]...",
		Short: "Combine yearly draft exports into one cleaned CSV",
		Long: `Reads mlb_draft_<year>_complete exports (CSV or HTML tables, local or
remote), normalizes every row and writes the combined dataset the engine
serves. The year of each row comes from its file name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.out == "" {
				o.out = config.ResolvePath(g.dataDir, config.Defaults().Data.CSVPath)
			}
			return runImport(cmd.Context(), cmd.OutOrStdout(), o, args)
		},
	}
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "cleaned CSV to write (default <data-dir>/mlb_draft_cleaned.csv)")
	cmd.Flags().StringVar(&o.dir, "dir", "", "also import every mlb_draft_*complete* file in this directory")
	cmd.Flags().IntVar(&o.concurrency, "concurrency", ingest.DefaultConcurrency, "inputs read in parallel")
	cmd.Flags().Float64Var(&o.rate, "rate", 1, "requests per second per remote host")
	return cmd
}

func runImport(ctx context.Context, w io.Writer, o importOpts, args []string) error {
	inputs := append([]string(nil), args...)
	if o.dir != "" {
		found, err := ingest.Discover(o.dir)
		if err != nil {
			return err
		}
		inputs = append(inputs, found...)
	}
	if len(inputs) == 0 {
		return errors.New("no inputs: pass files or urls, or --dir")
	}

	f := ingest.NewFetcher()
	if o.rate > 0 {
		f.Limiter = ingest.NewHostLimiter(o.rate, 1)
	}
	res, err := ingest.Combine(ctx, inputs, ingest.Options{Concurrency: o.concurrency, Fetcher: f})
	if err != nil {
		return err
	}
	if err := ingest.WriteCleanCSV(o.out, res.Picks); err != nil {
		return err
	}

	for _, fr := range res.Files {
		year := fr.Year
		if year == "" {
			year = "?"
		}
		fmt.Fprintf(w, "%s\tyear=%s\trows=%s\n", fr.Input, year, humanize.Comma(int64(fr.Rows)))
	}
	fmt.Fprintf(w, "wrote %s picks to %s\n", humanize.Comma(int64(len(res.Picks))), o.out)
	return nil
}
