package common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunInfo(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, RunInfo{}, RunInfoFrom(ctx))
	assert.Empty(t, RunInfo{}.LogAttrs())

	ctx = WithRunInfo(ctx, RunInfo{Source: "in/cv.pdf"})
	ctx = WithRunInfo(ctx, RunInfo{ID: "run-1"})

	info := RunInfoFrom(ctx)
	assert.Equal(t, RunInfo{ID: "run-1", Source: "in/cv.pdf"}, info)
	assert.Equal(t, []any{"run_id", "run-1", "source", "in/cv.pdf"}, info.LogAttrs())
}
