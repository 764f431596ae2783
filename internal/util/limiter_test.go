package util

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_WaitWithinBurst(t *testing.T) {
	l := NewLimiter(100, 5)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx, "https://example.com/search/"); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Burst requests should not block, took %v", elapsed)
	}
}

func TestLimiter_PerDomain(t *testing.T) {
	l := NewLimiter(1, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Exhausting one domain's burst must not block another domain
	if err := l.Wait(ctx, "https://a.example.com/"); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	start := time.Now()
	if err := l.Wait(ctx, "https://b.example.com/"); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Different domain should not be throttled, took %v", elapsed)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	l := NewLimiter(100, 5)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	if err := l.WaitWithDelay(ctx, "https://example.com/", 50*time.Millisecond); err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Additional delay not honored, took %v", elapsed)
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if err := l.Wait(context.Background(), "://not-a-url"); err == nil {
		t.Error("Expected error for invalid URL")
	}
}
