package common

import "context"

// RunInfo ties log lines from any layer back to one document run.
type RunInfo struct {
	ID     string
	Source string
}

type runInfoKey struct{}

// WithRunInfo attaches info to ctx. Empty fields keep what an outer run set.
func WithRunInfo(ctx context.Context, info RunInfo) context.Context {
	prev := RunInfoFrom(ctx)
	if info.ID == "" {
		info.ID = prev.ID
	}
	if info.Source == "" {
		info.Source = prev.Source
	}
	return context.WithValue(ctx, runInfoKey{}, info)
}

// RunInfoFrom returns the run carried by ctx, or the zero RunInfo.
func RunInfoFrom(ctx context.Context) RunInfo {
	info, _ := ctx.Value(runInfoKey{}).(RunInfo)
	return info
}

// LogAttrs returns run_id and source as slog key/value pairs, skipping blanks.
func (r RunInfo) LogAttrs() []any {
	attrs := make([]any, 0, 4)
	if r.ID != "" {
		attrs = append(attrs, "run_id", r.ID)
	}
	if r.Source != "" {
		attrs = append(attrs, "source", r.Source)
	}
	return attrs
}
