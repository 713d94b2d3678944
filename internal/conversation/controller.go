// Package conversation owns the message log of a study session: the user's
// question is appended at once, the assistant's reply when it arrives.
package conversation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/studyctx"
)

// Asker answers a query against a context description. Implementations
// never fail; errors are folded into the returned text.
type Asker interface {
	Ask(ctx context.Context, contextText, query string) string
}

// ResolveFunc describes the material on screen for a view of a topic.
type ResolveFunc func(view library.View, topic library.Topic) string

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithResolver replaces studyctx.Resolve.
func WithResolver(r ResolveFunc) Option {
	return func(c *Controller) { c.resolve = r }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithBaseContext sets the context every provider call derives from.
// Sessions do not cancel in-flight calls on Close.
func WithBaseContext(ctx context.Context) Option {
	return func(c *Controller) { c.baseCtx = ctx }
}

// Controller opens study sessions that share one Asker.
type Controller struct {
	asker   Asker
	resolve ResolveFunc
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
	baseCtx context.Context
}

func NewController(asker Asker, opts ...Option) *Controller {
	c := &Controller{
		asker:   asker,
		resolve: studyctx.Resolve,
		logger:  slog.Default(),
		now:     time.Now,
		newID:   uuid.NewString,
		baseCtx: context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open starts an empty session on topic showing the summary view.
func (c *Controller) Open(topic library.Topic) *Session {
	s := &Session{
		ctrl:    c,
		id:      c.newID(),
		topicID: topic.ID,
		topic:   topic,
		view:    library.ViewSummary,
		changes: make(chan struct{}, 1),
	}
	c.logger.DebugContext(s.logContext(), "session opened")
	return s
}
