package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/docsheet/internal/common"
)

const (
	MethodNative    = "native"
	MethodPdftotext = "pdftotext"
)

type Config struct {
	Method    string // MethodNative | MethodPdftotext; empty -> native
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit
}

type Result struct {
	Text     string
	Pages    int
	Method   string
	Duration time.Duration
	Warnings []string
}

// TextExtractor turns PDF content into plain text. Image-only pages yield
// empty text without an error.
type TextExtractor interface {
	ExtractFile(ctx context.Context, path string) (Result, error)
	ExtractBytes(ctx context.Context, data []byte) (Result, error)
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Method == "" {
		cfg.Method = MethodNative
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	return &Extractor{cfg: cfg, runner: execRunner{log: logger}, logger: logger}
}

// WithRunner swaps the command runner; used by tests.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

func (e *Extractor) ExtractFile(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	e.logger.Debug("pdftext.start", "path", path, "method", e.cfg.Method)

	var res Result
	var err error
	switch e.cfg.Method {
	case MethodPdftotext:
		if _, statErr := os.Stat(path); statErr != nil {
			return Result{}, common.NewKindError(common.KindFileIO, "cannot read "+path, statErr)
		}
		res, err = e.extractPdftotext(ctx, path)
	case MethodNative:
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return Result{}, common.NewKindError(common.KindFileIO, "cannot read "+path, readErr)
		}
		res, err = e.extractNative(data)
	default:
		return Result{}, common.NewKindError(common.KindConfig, fmt.Sprintf("unknown pdf method %q", e.cfg.Method), common.ErrInvalidInput)
	}
	res.Duration = time.Since(start)
	if err != nil {
		e.logger.Error("pdftext.failed", "path", path, "method", e.cfg.Method, "error", err)
		return res, err
	}
	e.logger.Info("pdftext.ok",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"text_len", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

// ExtractBytes is ExtractFile for content already in memory, e.g. an upload.
func (e *Extractor) ExtractBytes(ctx context.Context, data []byte) (Result, error) {
	if e.cfg.Method == MethodNative {
		start := time.Now()
		res, err := e.extractNative(data)
		res.Duration = time.Since(start)
		return res, err
	}

	tmp, err := os.CreateTemp("", "docsheet-*.pdf")
	if err != nil {
		return Result{}, common.NewKindError(common.KindFileIO, "create temp file", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return Result{}, common.NewKindError(common.KindFileIO, "write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return Result{}, common.NewKindError(common.KindFileIO, "close temp file", err)
	}
	return e.ExtractFile(ctx, tmp.Name())
}
