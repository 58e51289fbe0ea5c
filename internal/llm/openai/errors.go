package openai

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/joseph-ayodele/docsheet/internal/common"
)

// classifyError maps transport and API failures onto common kinds. Status
// codes win; message sniffing covers providers that return odd codes.
func classifyError(err error) *common.AppError {
	status := 0
	var code, errType, msg string

	var apiErr *goopenai.APIError
	var reqErr *goopenai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
		errType = apiErr.Type
		msg = apiErr.Message
		if s, ok := apiErr.Code.(string); ok {
			code = s
		}
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	text := strings.ToLower(strings.Join([]string{code, errType, msg, err.Error()}, " "))

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden ||
		strings.Contains(text, "invalid_api_key") || strings.Contains(text, "invalid api key"):
		return common.NewKindError(common.KindInvalidCredential, "the API key was rejected", err)
	case status == http.StatusTooManyRequests || strings.Contains(text, "rate_limit") || strings.Contains(text, "rate limit"):
		return common.NewKindError(common.KindRateLimited, "the model endpoint is rate limiting requests", err)
	case status == http.StatusRequestTimeout || status == http.StatusRequestEntityTooLarge ||
		status == http.StatusGatewayTimeout || isTimeout(err) || strings.Contains(text, "timeout"):
		return common.NewKindError(common.KindTimeout, "the request timed out or the input is too large", err)
	default:
		return common.NewKindError(common.KindRemote, "the model call failed", err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
