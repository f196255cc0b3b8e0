package retry

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"
	"time"

	"solidarity-api/internal/domain/entity"
)

func fastConfig() Config {
	return Config{
		MaxRetries:     3,
		BaseDelay:      10 * time.Millisecond,
		MaxDelay:       100 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func TestDo_Success(t *testing.T) {
	attempts := 0
	fn := func() error {
		attempts++
		return nil // Success on first attempt
	}

	err := Do(context.Background(), fastConfig(), fn)

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestDo_SuccessAfterRetry(t *testing.T) {
	attempts := 0
	fn := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("connection refused")
		}
		return nil // Success on 3rd attempt
	}

	err := Do(context.Background(), fastConfig(), fn)

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestDo_Exhausted(t *testing.T) {
	attempts := 0
	testErr := errors.New("db gone away")
	fn := func() error {
		attempts++
		return testErr // Always fail
	}

	err := Do(context.Background(), fastConfig(), fn)

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	// One initial attempt plus MaxRetries retries
	if attempts != 4 {
		t.Errorf("expected 4 attempts, got %d", attempts)
	}

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected *ExhaustedError, got %T", err)
	}
	if exhausted.Attempts != 4 {
		t.Errorf("expected Attempts=4, got %d", exhausted.Attempts)
	}
	if !errors.Is(err, testErr) {
		t.Error("expected wrapped error to contain original error")
	}
}

func TestDo_ZeroRetriesStillRunsOnce(t *testing.T) {
	attempts := 0
	fn := func() error {
		attempts++
		return errors.New("db gone away")
	}

	err := Do(context.Background(), Config{}, fn)

	if attempts != 1 {
		t.Errorf("expected exactly 1 attempt with MaxRetries=0, got %d", attempts)
	}

	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected *ExhaustedError, got %T", err)
	}
	if exhausted.Attempts != 1 {
		t.Errorf("expected Attempts=1, got %d", exhausted.Attempts)
	}
}

func TestDo_NotFoundAbortsImmediately(t *testing.T) {
	attempts := 0
	fn := func() error {
		attempts++
		return fmt.Errorf("FindByEmail: %w", entity.ErrNotFound)
	}

	err := Do(context.Background(), fastConfig(), fn)

	if !errors.Is(err, entity.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt (non-retryable), got %d", attempts)
	}
}

func TestDo_DuplicateAbortsImmediately(t *testing.T) {
	attempts := 0
	fn := func() error {
		attempts++
		return entity.ErrDuplicate
	}

	err := Do(context.Background(), fastConfig(), fn)

	if !errors.Is(err, entity.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt (non-retryable), got %d", attempts)
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	cfg := Config{
		MaxRetries:     5,
		BaseDelay:      50 * time.Millisecond,
		MaxDelay:       200 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}

	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	fn := func() error {
		attempts++
		if attempts == 2 {
			cancel() // Cancel context after 2nd attempt
		}
		return errors.New("transient")
	}

	err := Do(ctx, cfg, fn)

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled error, got %v", err)
	}
	if attempts < 2 {
		t.Errorf("expected at least 2 attempts, got %d", attempts)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{
			name:      "nil error",
			err:       nil,
			retryable: false,
		},
		{
			name:      "context canceled",
			err:       context.Canceled,
			retryable: false,
		},
		{
			name:      "context deadline exceeded",
			err:       context.DeadlineExceeded,
			retryable: false,
		},
		{
			name:      "not found",
			err:       entity.ErrNotFound,
			retryable: false,
		},
		{
			name:      "wrapped not found",
			err:       fmt.Errorf("Get: %w", entity.ErrNotFound),
			retryable: false,
		},
		{
			name:      "duplicate",
			err:       entity.ErrDuplicate,
			retryable: false,
		},
		{
			name:      "invalid input",
			err:       entity.ErrInvalidInput,
			retryable: false,
		},
		{
			name:      "validation error",
			err:       &entity.ValidationError{Field: "email", Message: "invalid email format"},
			retryable: false,
		},
		{
			name:      "ECONNREFUSED",
			err:       syscall.ECONNREFUSED,
			retryable: true,
		},
		{
			name:      "ECONNRESET",
			err:       syscall.ECONNRESET,
			retryable: true,
		},
		{
			name:      "ETIMEDOUT",
			err:       syscall.ETIMEDOUT,
			retryable: true,
		},
		{
			name:      "ENETUNREACH",
			err:       syscall.ENETUNREACH,
			retryable: true,
		},
		{
			name:      "generic driver error",
			err:       errors.New("some error"),
			retryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsRetryable(tt.err)
			if result != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", result, tt.retryable)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxRetries != 3 {
		t.Errorf("expected MaxRetries=3, got %d", cfg.MaxRetries)
	}
	if cfg.BaseDelay != 1*time.Second {
		t.Errorf("expected BaseDelay=1s, got %v", cfg.BaseDelay)
	}
	if cfg.MaxDelay != 30*time.Second {
		t.Errorf("expected MaxDelay=30s, got %v", cfg.MaxDelay)
	}
	if cfg.Multiplier != 2.0 {
		t.Errorf("expected Multiplier=2.0, got %f", cfg.Multiplier)
	}
	if cfg.JitterFraction != 0.1 {
		t.Errorf("expected JitterFraction=0.1, got %f", cfg.JitterFraction)
	}
}

func TestDBConfig(t *testing.T) {
	cfg := DBConfig()

	if cfg.MaxRetries != 3 {
		t.Errorf("expected MaxRetries=3, got %d", cfg.MaxRetries)
	}
	if cfg.BaseDelay != 100*time.Millisecond {
		t.Errorf("expected BaseDelay=100ms, got %v", cfg.BaseDelay)
	}
}

func TestExhaustedError_Error(t *testing.T) {
	err := &ExhaustedError{Attempts: 3, Err: errors.New("boom")}
	expected := "max retry attempts (3) exceeded: boom"

	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestAddJitter(t *testing.T) {
	duration := 100 * time.Millisecond
	jitterFraction := 0.2

	// Run multiple times to check jitter is random
	results := make(map[time.Duration]bool)
	for i := 0; i < 10; i++ {
		result := addJitter(duration, jitterFraction)

		// Result should be between duration and duration*(1+jitterFraction)
		minDuration := duration
		maxDuration := time.Duration(float64(duration) * 1.2)

		if result < minDuration || result > maxDuration {
			t.Errorf("expected result between %v and %v, got %v", minDuration, maxDuration, result)
		}

		results[result] = true
	}

	// Should have some variation (not all the same)
	if len(results) < 2 {
		t.Error("expected jitter to produce varied results")
	}
}

func TestAddJitter_ZeroFraction(t *testing.T) {
	duration := 100 * time.Millisecond
	result := addJitter(duration, 0.0)

	if result != duration {
		t.Errorf("expected no jitter with fraction=0, got %v instead of %v", result, duration)
	}
}
