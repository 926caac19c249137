package main

import (
	"testing"
	"time"
)

func TestParseDateFlag(t *testing.T) {
	if got := parseDateFlag("", "from"); !got.IsZero() {
		t.Errorf("empty flag should stay open-ended, got %v", got)
	}

	got := parseDateFlag("2025-06-01", "from")
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseDateFlag = %v, want %v", got, want)
	}
}
