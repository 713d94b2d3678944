package logging

import "context"

type contextKey string

const fieldsKey contextKey = "log_fields"

// Fields are attached to every record logged with a context carrying them.
type Fields struct {
	Component string
	SessionID string
	TopicID   string
}

// WithFields merges f into the fields already on ctx. Empty values in f
// leave the existing value in place.
func WithFields(ctx context.Context, f Fields) context.Context {
	merged := FieldsFrom(ctx)
	if f.Component != "" {
		merged.Component = f.Component
	}
	if f.SessionID != "" {
		merged.SessionID = f.SessionID
	}
	if f.TopicID != "" {
		merged.TopicID = f.TopicID
	}
	return context.WithValue(ctx, fieldsKey, merged)
}

func FieldsFrom(ctx context.Context) Fields {
	if f, ok := ctx.Value(fieldsKey).(Fields); ok {
		return f
	}
	return Fields{}
}

// Truncate shortens s to at most n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
