package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingProvider records every generation call on a zap logger.
type LoggingProvider struct {
	inner Provider
	log   *zap.Logger
}

// WithLogging wraps p so each call logs latency, token usage and outcome.
func WithLogging(p Provider, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	fields := []zap.Field{
		zap.String("model", l.inner.ModelID()),
		zap.Duration("latency", time.Since(start)),
	}
	if req.Schema != nil {
		fields = append(fields, zap.String("schema", req.Schema.Name))
	}
	if err != nil {
		l.log.Warn("generation call failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	l.log.Debug("generation call succeeded", append(fields,
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
	)...)
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
