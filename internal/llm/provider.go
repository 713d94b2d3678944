package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the contract every text-generation backend satisfies.
// StudyOS code never talks to a vendor SDK directly; it builds a Request
// and hands it to whichever Provider was constructed at startup.
type Provider interface {
	// Generate sends one request and returns the produced content.
	// When req.Schema is set the content is JSON validated against it,
	// otherwise it is the raw text the model produced.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier requests are sent to.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System is the system instruction (persona and rules). Optional.
	System string

	// Messages holds the turns sent to the model. Study-aid calls send a
	// single user message carrying both the context and the question.
	Messages []Message

	// Schema requests structured JSON output. Nil means free text.
	Schema *Schema

	// MaxTokens caps the response length. Zero lets the provider decide.
	MaxTokens int

	// Temperature controls sampling randomness. Zero leaves the
	// provider default in place.
	Temperature float64
}

// Message is one turn of a request.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single user turn.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Schema describes the JSON shape expected back from the model.
type Schema struct {
	// Name identifies the schema, e.g. "topic-quiz". It doubles as the
	// cache key for compiled validators.
	Name string

	// Description is sent to providers that accept one.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response is what a Provider produced for a Request.
type Response struct {
	// Content is validated JSON for schema requests and the model's raw
	// text otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns the response content as trimmed text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
