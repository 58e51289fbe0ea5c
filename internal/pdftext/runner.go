package pdftext

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/joseph-ayodele/docsheet/internal/common"
)

// Runner executes an external command and hands back both output streams.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// maxLoggedStderr bounds the stderr excerpt attached to a failure log.
const maxLoggedStderr = 4 << 10

// execRunner spawns real processes. stdout carries document text bound for
// the model, so only its size is ever logged.
type execRunner struct {
	log *slog.Logger
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	started := time.Now()
	err := cmd.Run()
	log := r.log.With(common.RunInfoFrom(ctx).LogAttrs()...).With(
		"bin", name,
		"elapsed_ms", time.Since(started).Milliseconds(),
		"stdout_bytes", stdout.Len(),
	)
	if err != nil {
		log.Error("pdftext.exec.failed",
			"argv", strings.Join(args, " "),
			"stderr", excerpt(stderr.Bytes(), maxLoggedStderr),
			"error", err,
		)
	} else {
		log.Debug("pdftext.exec.ok")
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

func excerpt(b []byte, limit int) string {
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		return s[:limit] + " [cut]"
	}
	return s
}
