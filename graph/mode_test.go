package graph

import (
	"testing"

	"github.com/cinegraph/cinegraph/errors"
)

func TestParseMode(t *testing.T) {
	for _, m := range AllModes() {
		got, err := ParseMode(string(m))
		if err != nil {
			t.Errorf("ParseMode(%q) failed: %v", m, err)
		}
		if got != m {
			t.Errorf("ParseMode(%q) = %q", m, got)
		}
	}

	_, err := ParseMode("orbit")
	if err == nil {
		t.Fatal("unknown mode accepted")
	}
	if !errors.Is(err, errors.ErrUnknownMode) {
		t.Errorf("error does not wrap ErrUnknownMode: %v", err)
	}
}

func TestModeValid(t *testing.T) {
	if Mode("").Valid() {
		t.Error("empty mode reported valid")
	}
	if !ModeTimeline.Valid() {
		t.Error("timeline reported invalid")
	}
}

func TestLinkCache(t *testing.T) {
	cache := NewLinkCache()
	calls := 0
	compute := func() []*Link {
		calls++
		return []*Link{{Source: "movie-1", Target: "movie-2", Type: LinkSimilarity, Weight: 1}}
	}

	first := cache.GetOrCompute(ModeSimilarity, compute)
	second := cache.GetOrCompute(ModeSimilarity, compute)
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatal("cached links lost")
	}

	if _, ok := cache.Get(ModeCoActor); ok {
		t.Error("uncomputed mode reported cached")
	}

	cache.Invalidate()
	cache.GetOrCompute(ModeSimilarity, compute)
	if calls != 2 {
		t.Errorf("compute ran %d times after invalidate, want 2", calls)
	}
}
