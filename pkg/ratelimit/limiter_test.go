package ratelimit

import (
	"testing"
	"time"
)

func TestTokenBucket(t *testing.T) {
	tb := NewTokenBucket(5, 200*time.Millisecond)

	// Initial capacity
	for i := 0; i < 5; i++ {
		if !tb.Allow() {
			t.Errorf("Expected token %d to be available", i+1)
		}
	}

	// Exhaustion
	if tb.Allow() {
		t.Error("Expected no more tokens to be available")
	}

	// Refill after a full period
	time.Sleep(250 * time.Millisecond)
	if !tb.Allow() {
		t.Error("Expected tokens to be refilled after waiting")
	}

	// Reset
	tb.tokens = 0
	tb.Reset()
	if tb.tokens != tb.capacity {
		t.Error("Expected tokens to be reset to capacity")
	}
}

func TestRevealPacerFirstWaitBlocks(t *testing.T) {
	pacer := NewRevealPacer(100 * time.Millisecond)

	start := time.Now()
	pacer.Wait()
	elapsed := time.Since(start)

	if elapsed < 80*time.Millisecond {
		t.Errorf("First Wait returned after %v, want a full settle delay", elapsed)
	}
}

func TestRevealPacerSpacesReads(t *testing.T) {
	pacer := NewRevealPacer(100 * time.Millisecond)

	start := time.Now()
	pacer.Wait()
	pacer.Wait()
	pacer.Wait()
	elapsed := time.Since(start)

	if elapsed < 280*time.Millisecond {
		t.Errorf("Three Waits took %v, want at least three delays", elapsed)
	}
}

func TestRevealPacerImmediateAfterSlowWork(t *testing.T) {
	pacer := NewRevealPacer(50 * time.Millisecond)

	pacer.Wait()
	// Work slower than the delay: the next Wait should not add more on top.
	time.Sleep(80 * time.Millisecond)

	start := time.Now()
	pacer.Wait()
	if since := time.Since(start); since > 20*time.Millisecond {
		t.Errorf("Wait after slow work blocked for %v, want immediate", since)
	}
}

func TestWaitBlocksUntilRefill(t *testing.T) {
	tb := NewTokenBucket(1, 100*time.Millisecond)

	if !tb.Allow() {
		t.Fatal("Expected the initial token")
	}

	start := time.Now()
	tb.Wait()
	elapsed := time.Since(start)

	if elapsed < 80*time.Millisecond {
		t.Errorf("Wait returned after %v, want roughly a refill period", elapsed)
	}
}

func TestNopNeverBlocks(t *testing.T) {
	var n Nop

	start := time.Now()
	for i := 0; i < 1000; i++ {
		n.Wait()
		if !n.Allow() {
			t.Fatal("Nop denied an action")
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("Nop limiter spent %v on 1000 actions", elapsed)
	}
}
