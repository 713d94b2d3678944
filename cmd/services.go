package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/studyos/internal/config"
	"github.com/abhisek/studyos/internal/conversation"
	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/llm"
	"github.com/abhisek/studyos/internal/logging"
	"github.com/abhisek/studyos/internal/quiz"
	"github.com/abhisek/studyos/internal/store"
	"github.com/abhisek/studyos/internal/studyaid"
	"github.com/abhisek/studyos/internal/telemetry"
)

// services is everything a command needs, built once from flags and the
// environment.
type services struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *store.Store
	provider llm.Provider
	catalog  *library.Catalog
	aid      *studyaid.Client
	quiz     *quiz.Generator

	// llmErr is set when the provider could not be configured.
	llmErr error

	logCloser io.Closer
	shutdown  telemetry.ShutdownFunc
}

func openServices(cmd *cobra.Command) (*services, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Load()
	s := &services{cfg: cfg}

	logger, closer, err := logging.Setup(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		// Logging is best effort; keep the app usable.
		fmt.Fprintln(os.Stderr, "logging disabled:", err)
		logger = logging.Discard()
	}
	s.logger, s.logCloser = logger, closer

	s.shutdown, err = telemetry.Setup(ctx, telemetry.Options{
		Enabled: cfg.Telemetry,
		Dir:     cfg.LogDir,
		Version: version,
	})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	s.store, err = store.OpenContext(ctx, dbPath)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	s.provider, s.llmErr = buildProvider(ctx, cfg, s.store.LLMEvents(), logger)
	if s.llmErr != nil {
		logger.Warn("study assistant unavailable", "error", s.llmErr)
	}

	s.catalog = library.DefaultCatalog()
	docFlags, _ := cmd.Flags().GetStringArray("doc")
	docs, err := parseDocFlags(docFlags)
	if err != nil {
		s.Close()
		return nil, err
	}
	for _, d := range docs {
		doc, err := s.catalog.AttachDocument(d.TopicID, d.Path)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("attach document: %w", err)
		}
		logger.Info("document attached", "topic_id", d.TopicID, "name", doc.Name, "size", doc.Size)
	}

	s.aid = studyaid.New(s.provider, studyaid.DefaultConfig(), studyaid.WithLogger(logger))
	s.quiz = quiz.NewGenerator(s.provider, quiz.DefaultConfig(), logger)

	return s, nil
}

// buildProvider wraps the configured vendor adapter, or returns an
// unavailable provider with the reason when there is none.
func buildProvider(ctx context.Context, cfg config.Config, recorder store.LLMEventRecorder, logger *slog.Logger) (llm.Provider, error) {
	if cfg.LLM == nil {
		return llm.NewUnavailableProvider(cfg.LLMErr), cfg.LLMErr
	}
	p, err := llm.NewProvider(ctx, *cfg.LLM, recorder, logger)
	if err != nil {
		return llm.NewUnavailableProvider(err), err
	}
	return p, nil
}

// newController opens a conversation controller on the study aid.
func (s *services) newController(ctx context.Context) *conversation.Controller {
	return conversation.NewController(s.aid,
		conversation.WithLogger(s.logger),
		conversation.WithBaseContext(ctx),
	)
}

func (s *services) warnIfUnavailable() {
	if s.llmErr != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", s.llmErr)
		fmt.Fprintln(os.Stderr, "The study assistant will answer with fallback messages.")
	}
}

// topic looks up id in the catalog.
func (s *services) topic(id string) (library.Topic, error) {
	t, err := s.catalog.Get(id)
	if err != nil {
		return library.Topic{}, fmt.Errorf("lookup topic: %w", err)
	}
	return t, nil
}

func (s *services) Close() {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("close store", "error", err)
		}
	}
	if s.shutdown != nil {
		if err := s.shutdown(context.Background()); err != nil {
			s.logger.Warn("telemetry shutdown", "error", err)
		}
	}
	if s.logCloser != nil {
		_ = s.logCloser.Close()
	}
}
