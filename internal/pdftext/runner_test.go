package pdftext

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsheet/internal/common"
)

func newLoggedRunner() (execRunner, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return execRunner{log: logger}, &buf
}

func TestExecRunner_LogsSizeNotContent(t *testing.T) {
	r, logs := newLoggedRunner()
	ctx := common.WithRunInfo(context.Background(), common.RunInfo{ID: "run-3"})

	out, _, err := r.Run(ctx, "sh", "-c", "printf 'Salary 90000'")

	require.NoError(t, err)
	assert.Equal(t, "Salary 90000", string(out))
	assert.Contains(t, logs.String(), "msg=pdftext.exec.ok")
	assert.Contains(t, logs.String(), "stdout_bytes=12")
	assert.Contains(t, logs.String(), "run_id=run-3")
	assert.NotContains(t, logs.String(), "90000")
}

func TestExecRunner_Failure(t *testing.T) {
	r, logs := newLoggedRunner()

	_, errb, err := r.Run(context.Background(), "sh", "-c", "echo 'Syntax Error: bad xref' >&2; exit 3")

	require.Error(t, err)
	assert.Contains(t, string(errb), "bad xref")
	assert.Contains(t, logs.String(), "msg=pdftext.exec.failed")
	assert.Contains(t, logs.String(), "bad xref")
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "abc", excerpt([]byte(" abc\n"), 10))
	assert.Equal(t, "ab [cut]", excerpt([]byte("abcdef"), 2))
}

func TestNewExtractor_RunnerUsesLogger(t *testing.T) {
	_, logs := newLoggedRunner()
	logger := slog.New(slog.NewTextHandler(logs, nil))

	e := NewExtractor(Config{}, logger)

	r, ok := e.runner.(execRunner)
	require.True(t, ok)
	assert.Same(t, logger, r.log)
}
