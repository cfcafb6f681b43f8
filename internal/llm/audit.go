package llm

import (
	"context"
	"time"

	"github.com/chaman2003/epsilora-api/internal/audit"
)

type contextKey string

const purposeKey contextKey = "llm_purpose"

// WithPurpose labels the context so audit records show what a request was
// for ("quiz-gen", "chat", ...).
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

func purposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// requestRecord is the audit payload for one model request.
type requestRecord struct {
	Model        string `json:"model"`
	Purpose      string `json:"purpose"`
	LatencyMs    int64  `json:"latency_ms"`
	Success      bool   `json:"success"`
	InputTokens  int    `json:"input_tokens,omitempty"`
	OutputTokens int    `json:"output_tokens,omitempty"`
	StopReason   string `json:"stop_reason,omitempty"`
	Error        string `json:"error,omitempty"`
}

// auditProvider records every request to the audit log. Recording failures
// never fail the request.
type auditProvider struct {
	inner    Provider
	recorder audit.Recorder
}

// WithAudit wraps a Provider with audit logging.
func WithAudit(p Provider, recorder audit.Recorder) Provider {
	return &auditProvider{inner: p, recorder: recorder}
}

func (a *auditProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := a.inner.Generate(ctx, req)

	rec := requestRecord{
		Model:     a.inner.ModelID(),
		Purpose:   purposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		rec.Model = resp.Model
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.StopReason = resp.StopReason
	}
	if err != nil {
		rec.Error = err.Error()
	}
	a.recorder.Record(ctx, audit.TypeLLMRequest, rec.Purpose, rec)

	return resp, err
}

func (a *auditProvider) ModelID() string { return a.inner.ModelID() }
