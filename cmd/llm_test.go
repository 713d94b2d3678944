package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyos/internal/store"
)

func TestPrintEvents(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printEvents(&out, []store.LLMRequestEvent{
		{ID: 2, Timestamp: time.Now().Add(-2 * time.Minute), LLMRequestEventData: store.LLMRequestEventData{
			Purpose: "study-aid", Model: "gemini-2.5-flash", InputTokens: 120, OutputTokens: 40, LatencyMs: 830, Success: true,
		}},
		{ID: 1, Timestamp: time.Now().Add(-time.Hour), LLMRequestEventData: store.LLMRequestEventData{
			Purpose: "quiz", Model: "gemini-2.5-flash", Success: false,
		}},
	}))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "2 minutes ago")
	assert.Contains(t, lines[1], "study-aid")
	assert.Contains(t, lines[1], "✓")
	assert.Contains(t, lines[2], "✗")
}

func TestPrintEvents_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printEvents(&out, nil))
	assert.Equal(t, "No LLM events found.\n", out.String())
}

func TestPrintEvent(t *testing.T) {
	var out bytes.Buffer
	printEvent(&out, &store.LLMRequestEvent{
		ID:        7,
		Timestamp: time.Now(),
		LLMRequestEventData: store.LLMRequestEventData{
			Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "weakness",
			InputTokens: 1_000_000, Success: false, ErrorMessage: "rate limited",
			RequestBody: `{"messages":[]}`,
		},
	})

	s := out.String()
	assert.Contains(t, s, "ID:        7")
	assert.Contains(t, s, "Cost:      $0.30")
	assert.Contains(t, s, "Error:     rate limited")
	assert.Contains(t, s, `{"messages":[]}`)
	assert.Contains(t, s, "(not captured)", "missing response body")
}

func TestPrintUsage(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printUsage(&out,
		[]store.PurposeUsage{
			{Purpose: "study-aid", Calls: 10, InputTokens: 12000, OutputTokens: 3400, AvgLatencyMs: 900},
			{Purpose: "quiz", Calls: 2, Failures: 1, InputTokens: 3000, OutputTokens: 1500},
		},
		[]store.ModelUsage{
			{Model: "gemini-2.5-flash", Calls: 11, InputTokens: 14000, OutputTokens: 4500},
			{Model: "homegrown-1", Calls: 1, InputTokens: 1000, OutputTokens: 400},
		},
	))

	s := out.String()
	assert.Contains(t, s, "12,000")
	assert.Contains(t, s, "15,000", "input total")
	assert.Contains(t, s, "TOTAL (partial)")
	assert.Contains(t, s, "Pricing unavailable for: homegrown-1")
}

func TestPrintUsage_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printUsage(&out, nil, nil))
	assert.Equal(t, "No LLM usage recorded yet.\n", out.String())
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0012", formatCost(0.0012))
	assert.Equal(t, "$1.50", formatCost(1.5))
}
