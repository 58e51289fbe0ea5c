package extract

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/docsheet/internal/common"
	"github.com/joseph-ayodele/docsheet/internal/llm"
	"github.com/joseph-ayodele/docsheet/internal/table"
)

func fixed(reply string, calls *int, prompts *[]string) llm.Completer {
	return llm.CompleterFunc(func(_ context.Context, prompt string) (string, error) {
		*calls++
		*prompts = append(*prompts, prompt)
		return reply, nil
	})
}

func TestExtractor_Extract(t *testing.T) {
	var calls int
	var prompts []string
	reply := "```json\n[{\"key\":\"Name\",\"value\":\"Alice\",\"comments\":\"\"},{\"key\":\"Age\",\"value\":\"30\",\"comments\":\"\"}]\n```"
	x := NewExtractor(fixed(reply, &calls, &prompts), nil)

	recs, err := x.Extract(context.Background(), "Name: Alice. Age: 30.")

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, strings.Contains(prompts[0], "Name: Alice. Age: 30."))
	assert.Equal(t, []table.Record{
		{Key: "Name", Value: "Alice"},
		{Key: "Age", Value: "30"},
	}, recs)
}

func TestExtractor_EmptyTextStillCallsModel(t *testing.T) {
	var calls int
	var prompts []string
	x := NewExtractor(fixed("[]", &calls, &prompts), nil)

	recs, err := x.Extract(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, recs)
}

func TestExtractor_MalformedReply(t *testing.T) {
	var calls int
	var prompts []string
	x := NewExtractor(fixed("Sorry, I cannot process this.", &calls, &prompts), nil)

	_, err := x.Extract(context.Background(), "Name: Alice.")

	require.Error(t, err)
	assert.Equal(t, common.KindMalformedOutput, common.KindOf(err))
	assert.Equal(t, 1, calls, "no retry")
}

func TestExtractor_CompleterErrorPassesThrough(t *testing.T) {
	want := common.NewKindError(common.KindRateLimited, "slow down", nil)
	x := NewExtractor(llm.CompleterFunc(func(context.Context, string) (string, error) {
		return "", want
	}), nil)

	_, err := x.Extract(context.Background(), "text")

	assert.ErrorIs(t, err, want)
	assert.Equal(t, common.KindRateLimited, common.KindOf(err))
}

func TestExtractor_LogsRunInfo(t *testing.T) {
	var calls int
	var prompts []string
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	x := NewExtractor(fixed(`[{"key":"Name","value":"Alice","comments":""}]`, &calls, &prompts), logger)

	ctx := common.WithRunInfo(context.Background(), common.RunInfo{ID: "run-7", Source: "docs/cv.pdf"})
	_, err := x.Extract(ctx, "Name: Alice")

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "msg=extract.ok")
	assert.Contains(t, buf.String(), "run_id=run-7")
	assert.Contains(t, buf.String(), "source=docs/cv.pdf")
}
