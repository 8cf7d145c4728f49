package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/HendryAvila/educhain-mcp/internal/content"
)

// Saver persists a bundle. cache.FileStore satisfies it.
type Saver interface {
	Save(b content.Bundle) error
}

// BatchResult reports the outcome for one content kind.
type BatchResult struct {
	Kind        content.Kind
	GeneratedBy content.Provenance
	Items       int
	SaveErr     error
}

// DefaultRequests returns the requests of a batch run for topic: ten
// questions, a sixty-minute beginner lesson plan and ten flashcards.
func DefaultRequests(topic string) []content.Request {
	return []content.Request{
		content.NewMCQRequest(topic, content.DefaultCount),
		content.NewLessonPlanRequest(topic, content.DefaultDuration, content.DefaultGradeLevel),
		content.NewFlashcardsRequest(topic, content.DefaultCount),
	}
}

// RunBatch generates every request concurrently and saves each bundle.
// Save failures are recorded in the results and logged; they never stop
// the other kinds. Once ctx is cancelled nothing more is saved, so an
// interrupted run leaves the existing cache files in place. Results are
// in request order.
func (p *Pipeline) RunBatch(ctx context.Context, saver Saver, reqs []content.Request) []BatchResult {
	results := make([]BatchResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		g.Go(func() error {
			b := p.Generate(gctx, req)
			res := BatchResult{
				Kind:        req.Kind,
				GeneratedBy: b.GeneratedBy,
				Items:       b.ItemCount(),
			}
			defer func() { results[i] = res }()

			if err := gctx.Err(); err != nil {
				res.SaveErr = err
				return err
			}
			if err := saver.Save(b); err != nil {
				p.log.Error("saving generated content failed",
					zap.String("kind", string(req.Kind)),
					zap.Error(err),
				)
				res.SaveErr = err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.log.Warn("batch interrupted, cache left unchanged for unsaved kinds", zap.Error(err))
	}

	return results
}
