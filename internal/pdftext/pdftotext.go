package pdftext

import (
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/docsheet/internal/common"
)

// extractPdftotext shells out to poppler. Pages come back separated by form
// feeds, which are dropped so the output matches the native backend.
func (e *Extractor) extractPdftotext(ctx context.Context, path string) (Result, error) {
	res := Result{Method: MethodPdftotext}

	// pdftotext -enc UTF-8 -eol unix [-l N] <path> -
	args := []string{"-enc", "UTF-8", "-eol", "unix"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(e.cfg.MaxPages))
	}
	args = append(args, path, "-")

	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, args...)
	if err != nil {
		if s := strings.TrimSpace(string(errb)); s != "" {
			res.Warnings = append(res.Warnings, s)
		}
		var notFound *exec.Error
		if errors.As(err, &notFound) {
			return res, common.NewKindError(common.KindConfig, e.cfg.Pdftotext+" is not installed", err)
		}
		return res, common.NewKindError(common.KindFileIO, "pdftotext failed on "+path, err)
	}

	pages := strings.Split(string(out), "\f")
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	res.Text = strings.Join(pages, "")
	res.Pages = len(pages)
	return res, nil
}
