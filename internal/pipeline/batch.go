package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/docsheet/constants"
	"github.com/joseph-ayodele/docsheet/internal/common"
)

// BatchItem is the outcome for one document of a batch.
type BatchItem struct {
	Path   string
	Result *RunResult
	Saved  Saved
	Err    error
}

// BatchSummary aggregates a finished batch.
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
	ByKind    map[common.Kind]int
	MeanScore float64
}

// BatchOptions controls RunBatch.
type BatchOptions struct {
	OutDir string
	// Root is the directory paths were discovered under. Output names are
	// built from the path relative to it, so a/cv.pdf and b/cv.pdf yield
	// a_cv and b_cv. Without it only the base name is used.
	Root   string
	Report bool
	// OnItem, if set, is called after each document in order.
	OnItem func(BatchItem)
}

// RunBatch processes paths one after another. A failed document is recorded
// and the batch moves on; only ctx cancellation stops it early.
func (p *Processor) RunBatch(ctx context.Context, paths []string, opts BatchOptions) BatchSummary {
	sum := BatchSummary{ByKind: map[common.Kind]int{}}
	scoreTotal := 0
	names := outputNames{}

	for _, path := range paths {
		if ctx.Err() != nil {
			p.Logger.Warn("batch.cancelled", "remaining", len(paths)-sum.Total)
			break
		}
		sum.Total++
		item := p.runOne(ctx, path, names.claim(outputStem(opts.Root, path)), opts)
		if item.Err != nil {
			sum.Failed++
			sum.ByKind[common.KindOf(item.Err)]++
		} else {
			sum.Succeeded++
			scoreTotal += item.Result.Score.Total
		}
		if opts.OnItem != nil {
			opts.OnItem(item)
		}
	}
	if sum.Succeeded > 0 {
		sum.MeanScore = float64(scoreTotal) / float64(sum.Succeeded)
	}
	p.Logger.Info("batch.done",
		"total", sum.Total,
		"succeeded", sum.Succeeded,
		"failed", sum.Failed,
		"mean_score", sum.MeanScore,
	)
	return sum
}

func (p *Processor) runOne(ctx context.Context, path, stem string, opts BatchOptions) BatchItem {
	item := BatchItem{Path: path}
	res, err := p.ProcessFile(ctx, path)
	if err != nil {
		item.Err = err
		return item
	}
	item.Result = res

	save := SaveOptions{
		Path:   filepath.Join(opts.OutDir, constants.OutputFilePrefix+stem+".xlsx"),
		Report: opts.Report,
	}
	if opts.Report {
		save.ReportPath = filepath.Join(opts.OutDir, stem+"_"+defaultReportName)
	}
	item.Saved, item.Err = p.SaveOutputs(res, save)
	return item
}

// outputStem names a document's outputs after its path under root, with
// directory separators flattened to underscores.
func outputStem(root, path string) string {
	name := filepath.Base(path)
	if root != "" {
		if rel, err := filepath.Rel(root, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			name = rel
		}
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return strings.ReplaceAll(filepath.ToSlash(name), "/", "_")
}

// outputNames hands out stems unique within one batch; a repeat gets _2, _3...
type outputNames map[string]struct{}

func (n outputNames) claim(stem string) string {
	name := stem
	for i := 2; ; i++ {
		if _, taken := n[name]; !taken {
			n[name] = struct{}{}
			return name
		}
		name = fmt.Sprintf("%s_%d", stem, i)
	}
}
