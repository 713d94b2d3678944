// Package studyaid turns a question about the material on screen into one
// request against the text-generation provider. It never returns errors:
// failures become fixed fallback replies.
package studyaid

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/abhisek/studyos/internal/llm"
	"github.com/abhisek/studyos/internal/logging"
)

const instrumentationName = "github.com/abhisek/studyos/internal/studyaid"

// Config holds request settings for Ask. SummarizeWeaknesses only uses
// MaxTokens and Timeout.
type Config struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

func DefaultConfig() Config {
	return Config{
		Temperature: 0.7,
		MaxTokens:   2048,
		Timeout:     60 * time.Second,
	}
}

type Option func(*Client)

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tp = tp }
}

// WithMeterProvider overrides the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Client) { c.mp = mp }
}

// Client is safe for concurrent use.
type Client struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
	tp       trace.TracerProvider
	mp       metric.MeterProvider

	tracer    trace.Tracer
	requests  metric.Int64Counter
	fallbacks metric.Int64Counter
}

func New(provider llm.Provider, cfg Config, opts ...Option) *Client {
	c := &Client{
		provider: provider,
		cfg:      cfg,
		logger:   slog.Default(),
		tp:       otel.GetTracerProvider(),
		mp:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.tracer = c.tp.Tracer(instrumentationName)
	meter := c.mp.Meter(instrumentationName)
	c.requests = counter(meter, "studyaid.requests", "Study-aid provider calls by operation")
	c.fallbacks = counter(meter, "studyaid.fallbacks", "Study-aid replies replaced by a fallback, by kind")

	return c
}

func counter(meter metric.Meter, name, desc string) metric.Int64Counter {
	ctr, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		return noop.Int64Counter{}
	}
	return ctr
}

// Ask answers query with contextText as grounding. The reply is the
// provider's text verbatim, FallbackEmpty when it produced nothing, or
// FallbackError when the call failed.
func (c *Client) Ask(ctx context.Context, contextText, query string) string {
	prompt, err := render(AskTemplate, AskPrompt{Context: contextText, Query: query})
	return c.generate(ctx, call{
		op:      llm.PurposeStudyAid,
		prompt:  prompt,
		tmplErr: err,
		req: llm.Request{
			System:      Persona,
			MaxTokens:   c.cfg.MaxTokens,
			Temperature: c.cfg.Temperature,
		},
		empty:    FallbackEmpty,
		fallback: FallbackError,
	})
}

// SummarizeWeaknesses asks for a diagnosis of weak areas and a study plan
// across topicTitles. It is a one-shot prompt with no persona and no
// conversation.
func (c *Client) SummarizeWeaknesses(ctx context.Context, topicTitles []string) string {
	prompt, err := render(WeaknessTemplate, WeaknessPrompt{Topics: topicTitles})
	return c.generate(ctx, call{
		op:      llm.PurposeWeakness,
		prompt:  prompt,
		tmplErr: err,
		req: llm.Request{
			MaxTokens: c.cfg.MaxTokens,
		},
		empty:    WeaknessFallbackEmpty,
		fallback: WeaknessFallbackError,
	})
}

type call struct {
	op       string
	prompt   string
	tmplErr  error
	req      llm.Request
	empty    string
	fallback string
}

func (c *Client) generate(ctx context.Context, cl call) string {
	ctx = llm.WithPurpose(ctx, cl.op)
	ctx = logging.WithFields(ctx, logging.Fields{Component: "studyos.studyaid"})

	ctx, span := c.tracer.Start(ctx, "studyaid."+cl.op,
		trace.WithAttributes(attribute.String("llm.model", c.provider.ModelID())))
	defer span.End()

	opAttr := attribute.String("operation", cl.op)
	c.requests.Add(ctx, 1, metric.WithAttributes(opAttr))

	if cl.tmplErr != nil {
		return c.fail(ctx, span, cl, "template", cl.tmplErr)
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	req := cl.req
	req.Messages = []llm.Message{llm.UserMessage(cl.prompt)}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return c.fail(ctx, span, cl, llm.ErrorKind(err), err)
	}

	text := resp.Text()
	if text == "" {
		span.SetAttributes(attribute.String("studyaid.fallback", "empty"))
		c.fallbacks.Add(ctx, 1, metric.WithAttributes(opAttr, attribute.String("kind", "empty")))
		c.logger.InfoContext(ctx, "provider returned empty text", "operation", cl.op)
		return cl.empty
	}

	span.SetAttributes(
		attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
	)
	return string(resp.Content)
}

func (c *Client) fail(ctx context.Context, span trace.Span, cl call, kind string, err error) string {
	span.RecordError(err)
	span.SetStatus(codes.Error, kind)
	span.SetAttributes(attribute.String("studyaid.fallback", kind))
	c.fallbacks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", cl.op),
		attribute.String("kind", kind),
	))
	c.logger.ErrorContext(ctx, "study aid request failed",
		"operation", cl.op,
		"kind", kind,
		"error", err,
	)
	return cl.fallback
}
