// Package pipeline drives the external generator for each content kind.
//
// Generate never fails: every attempt runs under its own deadline, failed
// attempts are retried after a fixed delay, and when the budget is spent
// (or an attempt times out) the request resolves to substitute content
// from the fallback package. The caller always gets a well-formed bundle.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HendryAvila/educhain-mcp/internal/content"
	"github.com/HendryAvila/educhain-mcp/internal/fallback"
	"github.com/HendryAvila/educhain-mcp/internal/llm"
	"github.com/HendryAvila/educhain-mcp/internal/templates"
)

// Config bounds a single Generate call.
type Config struct {
	// Timeout is the deadline for one attempt.
	Timeout time.Duration

	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// RetryDelay is the fixed wait between attempts.
	RetryDelay time.Duration

	// RetryOnTimeout makes a timed-out attempt count as a retryable
	// failure instead of going straight to fallback.
	RetryOnTimeout bool

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the production settings: 60s per attempt, three
// attempts, two seconds apart.
func DefaultConfig() Config {
	return Config{
		Timeout:     60 * time.Second,
		MaxAttempts: 3,
		RetryDelay:  2 * time.Second,
		MaxTokens:   4096,
		Temperature: 0.2,
	}
}

// errAttemptTimeout marks an attempt abandoned at its deadline.
var errAttemptTimeout = errors.New("generation attempt timed out")

// Pipeline turns content requests into bundles using a Provider.
type Pipeline struct {
	provider llm.Provider
	renderer templates.Renderer
	cfg      Config
	log      *zap.Logger
}

// New creates a Pipeline. Zero-valued Config fields take their defaults.
func New(provider llm.Provider, cfg Config, log *zap.Logger) (*Pipeline, error) {
	if provider == nil {
		return nil, errors.New("pipeline: provider is required")
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.RetryDelay < 0 {
		cfg.RetryDelay = 0
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}

	return &Pipeline{
		provider: provider,
		renderer: renderer,
		cfg:      cfg,
		log:      log.Named("pipeline"),
	}, nil
}

// Generate produces a bundle for req. It returns a PRIMARY bundle when an
// attempt succeeds and a FALLBACK bundle otherwise; it never returns an
// error. Cancelling ctx abandons the in-flight attempt and falls back.
func (p *Pipeline) Generate(ctx context.Context, req content.Request) content.Bundle {
	log := p.log.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("kind", string(req.Kind)),
		zap.String("topic", req.Topic),
	)

	if err := req.Validate(); err != nil {
		log.Warn("invalid request, using fallback", zap.Error(err))
		return fallback.Generate(req, fallback.NoteGenerationFailed)
	}

	llmReq, err := p.buildRequest(req)
	if err != nil {
		log.Error("building prompt failed, using fallback", zap.Error(err))
		return fallback.Generate(req, fallback.NoteGenerationFailed)
	}

	log.Info("generating content", zap.Int("count", req.Count))

	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			log.Warn("generation cancelled, using fallback", zap.Error(ctx.Err()))
			break
		}
		b, err := p.attempt(ctx, req, llmReq)
		if err == nil {
			log.Info("generated content",
				zap.Int("attempt", attempt),
				zap.Int("items", b.ItemCount()),
			)
			return b
		}

		if ctx.Err() != nil {
			log.Warn("generation cancelled, using fallback", zap.Error(ctx.Err()))
			break
		}
		if errors.Is(err, errAttemptTimeout) && !p.cfg.RetryOnTimeout {
			log.Error("generation timed out, using fallback",
				zap.Int("attempt", attempt),
				zap.Duration("timeout", p.cfg.Timeout),
			)
			break
		}

		log.Warn("generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", p.cfg.MaxAttempts),
			zap.String("reason", llm.Reason(err)),
			zap.Error(err),
		)
		if attempt < p.cfg.MaxAttempts {
			sleep(ctx, p.cfg.RetryDelay)
		}
	}

	log.Warn("resolving to fallback content")
	return fallback.Generate(req, fallback.NoteGenerationFailed)
}

type attemptResult struct {
	resp *llm.Response
	err  error
}

// attempt runs one provider call under the per-attempt deadline. The call
// runs in its own goroutine so a provider that ignores ctx is still
// abandoned on time; its eventual result is discarded.
func (p *Pipeline) attempt(ctx context.Context, req content.Request, llmReq llm.Request) (content.Bundle, error) {
	actx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	done := make(chan attemptResult, 1)
	go func() {
		resp, err := p.provider.Generate(actx, llmReq)
		done <- attemptResult{resp: resp, err: err}
	}()

	var res attemptResult
	select {
	case res = <-done:
	case <-actx.Done():
		if ctx.Err() != nil {
			return content.Bundle{}, ctx.Err()
		}
		return content.Bundle{}, errAttemptTimeout
	}

	if res.err != nil {
		if errors.Is(res.err, context.DeadlineExceeded) && ctx.Err() == nil {
			return content.Bundle{}, errAttemptTimeout
		}
		return content.Bundle{}, res.err
	}
	if res.resp == nil {
		return content.Bundle{}, &llm.ErrInvalidResponse{Err: errors.New("empty response")}
	}

	b, err := convert(req, res.resp.Content)
	if err != nil {
		return content.Bundle{}, &llm.ErrInvalidResponse{Content: res.resp.Content, Err: err}
	}

	b.GeneratedAt = timeNow()
	b.Model = res.resp.Model
	if b.Model == "" {
		b.Model = p.provider.ModelID()
	}
	return b, nil
}

// Model reports the model the pipeline generates with.
func (p *Pipeline) Model() string {
	return p.provider.ModelID()
}

func (c Config) String() string {
	return fmt.Sprintf("timeout=%s attempts=%d delay=%s retry_on_timeout=%t",
		c.Timeout, c.MaxAttempts, c.RetryDelay, c.RetryOnTimeout)
}
