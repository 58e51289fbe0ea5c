package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/docsheet/internal/common"
	"github.com/joseph-ayodele/docsheet/internal/evaluate"
	"github.com/joseph-ayodele/docsheet/internal/export"
	"github.com/joseph-ayodele/docsheet/internal/extract"
	"github.com/joseph-ayodele/docsheet/internal/pdftext"
	"github.com/joseph-ayodele/docsheet/internal/table"
)

// Stats summarizes a table for display.
type Stats struct {
	Records      int
	UniqueKeys   int
	WithComments int
}

// RunResult is everything one document run produced. It is a plain value the
// caller keeps; nothing here holds on to it.
type RunResult struct {
	ID         string
	SourcePath string
	SourceHash string
	Text       string
	Table      *table.Table
	Score      evaluate.ScoreReport
	Weighted   evaluate.WeightedReport
	Stats      Stats
	Elapsed    time.Duration
}

// Processor coordinates text extraction, record extraction, materialization
// and scoring for one document at a time.
type Processor struct {
	Logger  *slog.Logger
	Text    pdftext.TextExtractor
	Records extract.RecordExtractor
	Now     func() time.Time
}

func NewProcessor(logger *slog.Logger, text pdftext.TextExtractor, records extract.RecordExtractor) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Text: text, Records: records, Now: time.Now}
}

// ProcessFile reads the PDF at path and runs it end to end.
func (p *Processor) ProcessFile(ctx context.Context, path string) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		p.Logger.Error("processor.read.failed", "path", path, "error", err)
		return nil, common.NewKindError(common.KindFileIO, "cannot read "+path, err)
	}
	return p.ProcessBytes(ctx, path, data)
}

// ProcessBytes runs an in-memory PDF end to end. name is only recorded.
// Any failure ends the run; there is no partial result.
func (p *Processor) ProcessBytes(ctx context.Context, name string, data []byte) (*RunResult, error) {
	start := time.Now()
	id := uuid.New().String()
	ctx = common.WithRunInfo(ctx, common.RunInfo{ID: id, Source: name})
	hash := HashBytes(data)

	p.Logger.Info("processor.start", "run_id", id, "source", name, "bytes", len(data), "sha256", hash[:12])

	text, err := p.Text.ExtractBytes(ctx, data)
	if err != nil {
		p.Logger.Error("processor.text.failed", "run_id", id, "error", err)
		return nil, err
	}
	if text.Text == "" {
		p.Logger.Warn("processor.text.empty", "run_id", id, "pages", text.Pages)
	}
	p.Logger.Info("processor.text.ok",
		"run_id", id,
		"method", text.Method,
		"pages", text.Pages,
		"text_len", len(text.Text),
	)

	records, err := p.Records.Extract(ctx, text.Text)
	if err != nil {
		p.Logger.Error("processor.extract.failed", "run_id", id, "kind", common.KindOf(err), "error", err)
		return nil, err
	}

	t := table.Materialize(records)
	res := &RunResult{
		ID:         id,
		SourcePath: name,
		SourceHash: hash,
		Text:       text.Text,
		Table:      t,
		Score:      evaluate.Evaluate(t, text.Text),
		Weighted:   evaluate.EvaluateWeighted(t, text.Text),
		Stats:      Stats{Records: t.Len(), UniqueKeys: t.UniqueKeys(), WithComments: t.CommentCount()},
		Elapsed:    time.Since(start),
	}
	p.Logger.Info("processor.ok",
		"run_id", id,
		"records", t.Len(),
		"score", res.Score.Total,
		"grade", res.Score.Grade,
		"weighted", res.Weighted.Overall,
		"elapsed_ms", res.Elapsed.Milliseconds(),
	)
	return res, nil
}

// HashBytes is the content key used to recognise a document seen before.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SaveOptions controls SaveOutputs.
type SaveOptions struct {
	Dir        string // used when Path is empty
	Path       string // explicit spreadsheet path
	Report     bool
	ReportPath string // defaults to Dir/evaluation_report.txt
}

// Saved lists the files SaveOutputs wrote.
type Saved struct {
	XLSX   string
	Report string
}

// SaveOutputs writes the spreadsheet and, if asked, the report file.
func (p *Processor) SaveOutputs(res *RunResult, opts SaveOptions) (Saved, error) {
	now := p.Now()
	var out Saved

	out.XLSX = opts.Path
	if out.XLSX == "" {
		out.XLSX = filepath.Join(opts.Dir, export.OutputFileName(now))
	}
	if err := export.WriteFile(out.XLSX, res.Table); err != nil {
		p.Logger.Error("processor.save.failed", "run_id", res.ID, "path", out.XLSX, "error", err)
		return Saved{}, err
	}

	if opts.Report {
		out.Report = opts.ReportPath
		if out.Report == "" {
			out.Report = filepath.Join(opts.Dir, defaultReportName)
		}
		if err := evaluate.WriteReportFile(out.Report, res.Score, filepath.Base(res.SourcePath), filepath.Base(out.XLSX), now); err != nil {
			return out, err
		}
	}
	p.Logger.Info("processor.saved", "run_id", res.ID, "xlsx", out.XLSX, "report", out.Report)
	return out, nil
}

const defaultReportName = "evaluation_report.txt"

// EvaluateFiles scores an existing spreadsheet against its source PDF without
// calling the model.
func (p *Processor) EvaluateFiles(ctx context.Context, xlsxPath, pdfPath string) (*RunResult, error) {
	start := time.Now()
	t, err := export.ReadFile(xlsxPath)
	if err != nil {
		return nil, err
	}
	text, err := p.Text.ExtractFile(ctx, pdfPath)
	if err != nil {
		return nil, err
	}
	res := &RunResult{
		ID:         uuid.New().String(),
		SourcePath: pdfPath,
		Text:       text.Text,
		Table:      t,
		Score:      evaluate.Evaluate(t, text.Text),
		Weighted:   evaluate.EvaluateWeighted(t, text.Text),
		Stats:      Stats{Records: t.Len(), UniqueKeys: t.UniqueKeys(), WithComments: t.CommentCount()},
		Elapsed:    time.Since(start),
	}
	p.Logger.Info("processor.evaluate.ok",
		"xlsx", xlsxPath,
		"pdf", pdfPath,
		"rows", t.Len(),
		"score", res.Score.Total,
	)
	return res, nil
}
