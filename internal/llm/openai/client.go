package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/joseph-ayodele/docsheet/internal/common"
)

// Complete implements llm.Completer with a single user-role chat completion.
// It never retries; every failure comes back classified.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.complete.start", append([]any{
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"max_tokens", c.cfg.MaxTokens,
		"prompt_len", len(prompt),
	}, common.RunInfoFrom(ctx).LogAttrs()...)...)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.log.Error("llm.complete.limiter_error", "req_id", rid, "error", err)
			return "", classifyError(err)
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		appErr := classifyError(err)
		c.log.Error("llm.complete.http_error",
			"req_id", rid,
			"kind", appErr.Kind,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", appErr
	}

	if len(resp.Choices) == 0 {
		c.log.Error("llm.complete.no_choices",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.NewKindError(common.KindMalformedOutput, "no choices in completion response", nil)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Info("llm.complete.ok",
		"req_id", rid,
		"content_len", len(content),
		"finish_reason", resp.Choices[0].FinishReason,
		"total_tokens", resp.Usage.TotalTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	if resp.Choices[0].FinishReason == goopenai.FinishReasonLength {
		c.log.Warn("llm.complete.truncated", "req_id", rid, "max_tokens", c.cfg.MaxTokens)
	}
	return content, nil
}

func (c *Client) String() string {
	return fmt.Sprintf("openai-compatible(%s @ %s)", c.cfg.Model, c.cfg.BaseURL)
}
