// Package screens holds what the individual TUI screens share.
package screens

import (
	"context"
	"log/slog"

	"github.com/abhisek/studyos/internal/conversation"
	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/quiz"
	"github.com/abhisek/studyos/internal/screens/history"
	"github.com/abhisek/studyos/internal/screens/settings"
)

// WeaknessSummarizer produces the weakness analysis text. It never fails;
// fallbacks come back as ordinary text.
type WeaknessSummarizer interface {
	SummarizeWeaknesses(ctx context.Context, topicTitles []string) string
}

// QuizGenerator builds a quiz for the material in view.
type QuizGenerator interface {
	Generate(ctx context.Context, topic library.Topic, view library.View) (*quiz.Quiz, error)
}

// Deps are the services the screens navigate between with.
type Deps struct {
	Catalog       *library.Catalog
	Conversations *conversation.Controller
	Weakness      WeaknessSummarizer
	Quiz          QuizGenerator
	Events        history.EventReader
	Settings      []settings.Entry

	// ModelName labels the chat panel, e.g. "Gemini 2.5 Flash".
	ModelName string
	Logger    *slog.Logger
}

// Log returns the configured logger or the default one.
func (d Deps) Log() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
