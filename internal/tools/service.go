package tools

import (
	"context"

	"go.uber.org/zap"

	"github.com/HendryAvila/educhain-mcp/internal/cache"
	"github.com/HendryAvila/educhain-mcp/internal/content"
	"github.com/HendryAvila/educhain-mcp/internal/fallback"
)

// Generator produces fresh content. *pipeline.Pipeline satisfies it.
type Generator interface {
	Generate(ctx context.Context, req content.Request) content.Bundle
}

// Service resolves a content request for the tools.
//
// Requests for the default topic are served from the cache with the
// caller's parameters patched in. Everything else gets fallback content,
// or live generation when a Generator is configured.
type Service struct {
	store        cache.Store
	gen          Generator
	defaultTopic string
	log          *zap.Logger
}

// NewService creates a Service. gen may be nil to disable live generation.
func NewService(store cache.Store, gen Generator, defaultTopic string, log *zap.Logger) *Service {
	if defaultTopic == "" {
		defaultTopic = content.DefaultTopic
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, gen: gen, defaultTopic: defaultTopic, log: log.Named("tools")}
}

// DefaultTopic returns the topic whose content is cached.
func (s *Service) DefaultTopic() string {
	return s.defaultTopic
}

// Resolve returns the bundle for req. It never fails; req must already
// be valid.
func (s *Service) Resolve(ctx context.Context, req content.Request) content.Bundle {
	log := s.log.With(zap.String("kind", string(req.Kind)), zap.String("topic", req.Topic))

	if req.Topic == s.defaultTopic {
		if cached, ok := s.cached(req, log); ok {
			log.Debug("serving cached content", zap.Int("items", cached.ItemCount()))
			return cached.WithRequest(req, timeNow())
		}
	}

	if s.gen != nil {
		return s.gen.Generate(ctx, req)
	}

	log.Info("serving fallback content")
	return fallback.Generate(req, fallback.NoteNoCache)
}

// cached loads the cache file for req.Kind and reports whether it holds
// content for req.Topic. Files without a topic predate topic tracking and
// are attributed to the default topic.
func (s *Service) cached(req content.Request, log *zap.Logger) (*content.Bundle, bool) {
	b, desc := s.store.Load(req.Kind)
	if desc != nil {
		log.Info("cache miss", zap.String("reason", desc.Message))
		return nil, false
	}
	topic := b.Topic
	if topic == "" {
		topic = s.defaultTopic
	}
	if topic != req.Topic {
		log.Info("cache miss", zap.String("reason", "cached content is for another topic"),
			zap.String("cached_topic", topic))
		return nil, false
	}
	return b, true
}
