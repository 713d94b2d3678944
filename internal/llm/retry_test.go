package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func unavailable() MockResponse {
	return ErrorResponse(&ErrProviderUnavailable{Err: errors.New("connection reset")})
}

func TestRetry_FirstAttemptSucceeds(t *testing.T) {
	mock := NewMockProvider(TextResponse("요약입니다"))
	resp, err := WithRetry(mock, fastRetry(), nil).Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "요약입니다" {
		t.Fatalf("unexpected text %q", resp.Text())
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_RecoversFromOutage(t *testing.T) {
	mock := NewMockProvider(unavailable(), TextResponse("ok"))
	if _, err := WithRetry(mock, fastRetry(), nil).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), unavailable(), TextResponse("never"))
	_, err := WithRetry(mock, fastRetry(), nil).Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_TruncationIsFinal(t *testing.T) {
	mock := NewMockProvider(ErrorResponse(&ErrMaxTokensExceeded{Content: json.RawMessage(`{`)}))
	_, err := WithRetry(mock, fastRetry(), nil).Generate(context.Background(), Request{})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected no retry, got %d calls", mock.CallCount())
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	bad := ErrorResponse(&ErrInvalidResponse{Err: errors.New("bad")})
	mock := NewMockProvider(bad, bad, TextResponse("unreached"))
	if _, err := WithRetry(mock, fastRetry(), nil).Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_CanceledContext(t *testing.T) {
	mock := NewMockProvider(unavailable(), TextResponse("ok"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(mock, fastRetry(), nil).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_HonoursRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		ErrorResponse(&ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}),
		TextResponse("ok"),
	)
	if _, err := WithRetry(mock, fastRetry(), nil).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(TextResponse("ok"))
	if _, err := WithRetry(mock, RetryConfig{}, nil).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 5*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if ErrorKind(err) != "timeout" {
		t.Fatalf("expected kind timeout, got %q", ErrorKind(err))
	}
	if p.ModelID() != "slow" {
		t.Fatalf("expected ModelID to delegate, got %q", p.ModelID())
	}

	if WithTimeout(slowProvider{}, 0) != (slowProvider{}) {
		t.Fatal("expected zero timeout to return the provider unchanged")
	}
}

func TestRetry_LogsToInjectedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mock := NewMockProvider(unavailable(), TextResponse("ok"))
	if _, err := WithRetry(mock, fastRetry(), logger).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "retrying llm request") {
		t.Fatalf("expected retry line in injected logger, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "attempt=1") {
		t.Errorf("expected attempt number, got %q", buf.String())
	}
}
