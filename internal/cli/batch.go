package cli

import (
	"fmt"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/docsheet/internal/common"
	"github.com/joseph-ayodele/docsheet/internal/ingest"
	"github.com/joseph-ayodele/docsheet/internal/pipeline"
	"github.com/joseph-ayodele/docsheet/internal/session"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		outDir        string
		report        bool
		includeHidden bool
		watch         bool
		debounce      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Extract every PDF under a directory",
		Long: `Batch walks a directory and runs each PDF through the pipeline, one
after another. A failing document is reported and skipped. Model calls are
paced by llm.requests_per_minute when set.

With --watch the command keeps running and processes PDFs as they appear.

Example:
  docsheet batch ./inbox --out-dir ./sheets
  docsheet batch ./inbox --watch --report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			if outDir == "" {
				outDir = a.cfg.Output.Dir
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return common.NewKindError(common.KindFileIO, "create output directory", err)
			}

			p, err := a.processor(true)
			if err != nil {
				return err
			}
			opts := pipeline.BatchOptions{OutDir: outDir, Root: root, Report: report, OnItem: a.printItem}

			if watch {
				return a.watch(cmd, p, root, !includeHidden, debounce, opts)
			}

			paths, failed, _, err := ingest.DiscoverPDFs(root, !includeHidden)
			if err != nil {
				return common.NewKindError(common.KindFileIO, "walk "+root, err)
			}
			for _, f := range failed {
				fmt.Fprintf(a.errOut, "skip %s: %v\n", f.Path, f.Err)
			}
			fmt.Fprintf(a.out, "Found %d PDF(s) in %s\n\n", len(paths), root)

			sum := p.RunBatch(cmd.Context(), paths, opts)
			a.printSummary(sum)
			if sum.Failed > 0 && sum.Succeeded == 0 {
				return fmt.Errorf("all %d documents failed", sum.Failed)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "", "output directory (default: output.dir)")
	cmd.Flags().BoolVar(&report, "report", false, "write a report file per document")
	cmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "also process dot files and dot directories")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and process new PDFs as they appear")
	cmd.Flags().DurationVar(&debounce, "debounce", 2*time.Second, "wait this long after the last write before processing")
	return cmd
}

func (a *app) watch(cmd *cobra.Command, p *pipeline.Processor, root string, skipHidden bool, debounce time.Duration, opts pipeline.BatchOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
		Roots:       []string{root},
		InitialScan: true,
		SkipHidden:  skipHidden,
		Debounce:    debounce,
		Logger:      a.logger,
	})
	if err != nil {
		return common.NewKindError(common.KindFileIO, "watch "+root, err)
	}
	fmt.Fprintf(a.out, "Watching %s (Ctrl+C to stop)\n\n", root)

	seen := session.New(a.cfg.Cache.TTL, a.cfg.Cache.CleanupInterval)
	for {
		select {
		case path, ok := <-events:
			if !ok {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				a.printItem(pipeline.BatchItem{Path: path, Err: common.NewKindError(common.KindFileIO, "read", err)})
				continue
			}
			if prev, ok := seen.ByHash(pipeline.HashBytes(data)); ok {
				a.logger.Info("batch.watch.unchanged", "path", path, "run_id", prev.ID)
				continue
			}
			p.RunBatch(ctx, []string{path}, pipeline.BatchOptions{
				OutDir: opts.OutDir,
				Root:   opts.Root,
				Report: opts.Report,
				OnItem: func(it pipeline.BatchItem) {
					if it.Result != nil {
						seen.Put(it.Result)
					}
					a.printItem(it)
				},
			})
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			fmt.Fprintf(a.errOut, "watch error: %v\n", err)
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *app) printItem(it pipeline.BatchItem) {
	if it.Err != nil {
		fmt.Fprintf(a.out, "FAIL  %s: %s\n", it.Path, common.UserMessage(it.Err))
		return
	}
	fmt.Fprintf(a.out, "OK    %s -> %s  %d/100 (%s)\n", it.Path, it.Saved.XLSX, it.Result.Score.Total, it.Result.Score.Grade)
}

func (a *app) printSummary(sum pipeline.BatchSummary) {
	fmt.Fprintf(a.out, "\nProcessed: %d  Succeeded: %d  Failed: %d\n", sum.Total, sum.Succeeded, sum.Failed)
	if sum.Succeeded > 0 {
		fmt.Fprintf(a.out, "Mean score: %.1f/100\n", sum.MeanScore)
	}
	kinds := make([]string, 0, len(sum.ByKind))
	for k := range sum.ByKind {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Fprintf(a.out, "  %s: %d\n", k, sum.ByKind[common.Kind(k)])
	}
}
