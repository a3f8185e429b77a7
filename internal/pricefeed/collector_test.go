package pricefeed

import (
	"context"
	"errors"
	"testing"
	"time"

	"guessgame/internal/models"
)

type stubFeed struct {
	quote Quote
	err   error
}

func (f *stubFeed) BTCPrice(ctx context.Context) (Quote, error) { return f.quote, f.err }

type stubSampleStore struct {
	samples []models.PriceSample
}

func (s *stubSampleStore) LatestPriceSample(ctx context.Context) (*models.PriceSample, error) {
	if len(s.samples) == 0 {
		return nil, nil
	}
	cp := s.samples[len(s.samples)-1]
	return &cp, nil
}

func (s *stubSampleStore) InsertPriceSample(ctx context.Context, item *models.PriceSample) error {
	item.ID = uint64(len(s.samples) + 1)
	s.samples = append(s.samples, *item)
	return nil
}

func TestCollectorColdStart(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	updated := now.Add(-2 * time.Second)
	store := &stubSampleStore{}
	c := &Collector{
		Feed:  &stubFeed{quote: Quote{PriceCents: 6500000, UpdatedAt: updated}},
		Store: store,
		Now:   func() time.Time { return now },
	}

	if err := c.Poll(context.Background()); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(store.samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(store.samples))
	}
	got := store.samples[0]
	if got.PriceCents != 6500000 {
		t.Fatalf("price cents = %d", got.PriceCents)
	}
	if !got.FetchedAt.Equal(now) || !got.SourceUpdatedAt.Equal(updated) {
		t.Fatalf("timestamps = %v / %v", got.FetchedAt, got.SourceUpdatedAt)
	}
}

func TestCollectorDedupsIdenticalQuote(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	updated := now.Add(-2 * time.Second)
	store := &stubSampleStore{}
	feed := &stubFeed{quote: Quote{PriceCents: 6500000, UpdatedAt: updated}}
	c := &Collector{Feed: feed, Store: store, Now: func() time.Time { return now }}

	if err := c.Poll(context.Background()); err != nil {
		t.Fatalf("first Poll: %v", err)
	}
	if err := c.Poll(context.Background()); err != nil {
		t.Fatalf("second Poll: %v", err)
	}
	if len(store.samples) != 1 {
		t.Fatalf("identical quote must not append, got %d samples", len(store.samples))
	}

	// Same price with a newer upstream timestamp is a fresh observation.
	feed.quote.UpdatedAt = updated.Add(10 * time.Second)
	if err := c.Poll(context.Background()); err != nil {
		t.Fatalf("third Poll: %v", err)
	}
	if len(store.samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(store.samples))
	}
}

func TestCollectorAppendsOnPriceChange(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	updated := now.Add(-2 * time.Second)
	store := &stubSampleStore{}
	feed := &stubFeed{quote: Quote{PriceCents: 6500000, UpdatedAt: updated}}
	c := &Collector{Feed: feed, Store: store, Now: func() time.Time { return now }}

	if err := c.Poll(context.Background()); err != nil {
		t.Fatalf("first Poll: %v", err)
	}
	feed.quote.PriceCents = 6500100
	if err := c.Poll(context.Background()); err != nil {
		t.Fatalf("second Poll: %v", err)
	}
	if len(store.samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(store.samples))
	}
}

func TestCollectorFeedError(t *testing.T) {
	feedErr := errors.New("upstream down")
	store := &stubSampleStore{}
	c := &Collector{Feed: &stubFeed{err: feedErr}, Store: store}

	if err := c.Poll(context.Background()); !errors.Is(err, feedErr) {
		t.Fatalf("expected feed error, got %v", err)
	}
	if len(store.samples) != 0 {
		t.Fatalf("failed poll must not append")
	}
}
