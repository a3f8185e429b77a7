package pricefeed

import (
	"context"
	"time"

	"go.uber.org/zap"

	"guessgame/internal/metrics"
	"guessgame/internal/models"
)

// Feed yields the current upstream price.
type Feed interface {
	BTCPrice(ctx context.Context) (Quote, error)
}

// SampleStore is the slice of the repository the collector writes through.
type SampleStore interface {
	LatestPriceSample(ctx context.Context) (*models.PriceSample, error)
	InsertPriceSample(ctx context.Context, item *models.PriceSample) error
}

// Collector polls the feed and appends a sample to the price cache when the
// value or the upstream timestamp changed. Consecutive identical quotes are
// dropped, keeping the cache append-only and deduplicated.
type Collector struct {
	Feed   Feed
	Store  SampleStore
	Logger *zap.Logger

	Now func() time.Time
}

func (c *Collector) now() time.Time {
	if c.Now != nil {
		return c.Now().UTC()
	}
	return time.Now().UTC()
}

// Poll performs one fetch-compare-append pass.
func (c *Collector) Poll(ctx context.Context) error {
	quote, err := c.Feed.BTCPrice(ctx)
	if err != nil {
		return err
	}

	latest, err := c.Store.LatestPriceSample(ctx)
	if err != nil {
		return err
	}
	if latest != nil &&
		latest.PriceCents == quote.PriceCents &&
		latest.SourceUpdatedAt.Equal(quote.UpdatedAt) {
		return nil
	}

	sample := &models.PriceSample{
		PriceCents:      quote.PriceCents,
		FetchedAt:       c.now(),
		SourceUpdatedAt: quote.UpdatedAt,
	}
	if err := c.Store.InsertPriceSample(ctx, sample); err != nil {
		return err
	}

	metrics.PriceSamples.Inc()
	metrics.LatestPrice.Set(float64(quote.PriceCents))
	if c.Logger != nil {
		c.Logger.Info("price sample cached",
			zap.Int64("price_cents", quote.PriceCents),
			zap.Time("source_updated_at", quote.UpdatedAt),
		)
	}
	return nil
}
