package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"guessgame/internal/models"
	"guessgame/internal/repository"
)

type stubPriceStore struct {
	sample   *models.PriceSample
	averages []repository.MinuteAverage

	gotLimit int
}

func (s *stubPriceStore) LatestPriceSample(ctx context.Context) (*models.PriceSample, error) {
	return s.sample, nil
}

func (s *stubPriceStore) ListMinuteAverages(ctx context.Context, limit int) ([]repository.MinuteAverage, error) {
	s.gotLimit = limit
	return s.averages, nil
}

func priceTestRouter(store PriceStore, chartMinutes int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &PriceHandler{Store: store, ChartMinutes: chartMinutes}
	h.Register(r.Group("/api/v1"))
	return r
}

func TestLatestPriceEndpoint(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	store := &stubPriceStore{sample: &models.PriceSample{
		ID: 3, PriceCents: 6500000, FetchedAt: now, SourceUpdatedAt: now,
	}}
	r := priceTestRouter(store, 15)

	w := doJSON(t, r, http.MethodGet, "/api/v1/price", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Price int64 `json:"price"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Price != 6500000 {
		t.Fatalf("price = %d", body.Price)
	}
}

func TestLatestPriceEndpointColdCache(t *testing.T) {
	r := priceTestRouter(&stubPriceStore{}, 15)

	w := doJSON(t, r, http.MethodGet, "/api/v1/price", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if got := errorCode(t, w); got != CodeNoPriceData {
		t.Fatalf("error code = %q", got)
	}
}

func TestPriceChartEndpoint(t *testing.T) {
	store := &stubPriceStore{averages: []repository.MinuteAverage{
		{MinuteLabel: "12:01", AvgPriceCents: 6500050.4},
		{MinuteLabel: "12:00", AvgPriceCents: 6499949.6},
	}}
	r := priceTestRouter(store, 15)

	w := doJSON(t, r, http.MethodGet, "/api/v1/price/chart", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if store.gotLimit != 15 {
		t.Fatalf("limit = %d, want 15", store.gotLimit)
	}
	var points []chartPoint
	if err := json.Unmarshal(w.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("points = %d", len(points))
	}
	if points[0].MinuteLabel != "12:01" || points[0].Price != 65000.50 {
		t.Fatalf("point 0 = %+v", points[0])
	}
	if points[1].Price != 64999.50 {
		t.Fatalf("point 1 = %+v", points[1])
	}
}

func TestPriceChartEndpointEmpty(t *testing.T) {
	r := priceTestRouter(&stubPriceStore{}, 15)

	w := doJSON(t, r, http.MethodGet, "/api/v1/price/chart", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var points []chartPoint
	if err := json.Unmarshal(w.Body.Bytes(), &points); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("expected empty array, got %+v", points)
	}
}
