package handler

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"guessgame/internal/models"
	"guessgame/internal/repository"
)

// PriceStore is the read side of the price cache.
type PriceStore interface {
	LatestPriceSample(ctx context.Context) (*models.PriceSample, error)
	ListMinuteAverages(ctx context.Context, limit int) ([]repository.MinuteAverage, error)
}

type PriceHandler struct {
	Store        PriceStore
	Logger       *zap.Logger
	ChartMinutes int
}

func (h *PriceHandler) Register(r *gin.RouterGroup) {
	p := r.Group("/price")
	p.GET("", h.latest)
	p.GET("/chart", h.chart)
	p.GET("/stream", h.stream)
}

// @Summary Latest cached price
// @Tags price
// @Success 200 {object} models.PriceSample
// @Failure 503 {object} errorBody "no_price_data_available"
// @Router /api/v1/price [get]
func (h *PriceHandler) latest(c *gin.Context) {
	sample, err := h.Store.LatestPriceSample(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("price lookup failed", zap.Error(err))
		}
		Fail(c, http.StatusInternalServerError, CodeInternalError)
		return
	}
	if sample == nil {
		Fail(c, http.StatusServiceUnavailable, CodeNoPriceData)
		return
	}
	c.JSON(http.StatusOK, sample)
}

type chartPoint struct {
	MinuteLabel string  `json:"minute_label"`
	Price       float64 `json:"price"`
}

// @Summary Per-minute average price, newest first
// @Tags price
// @Success 200 {array} chartPoint
// @Router /api/v1/price/chart [get]
func (h *PriceHandler) chart(c *gin.Context) {
	limit := h.ChartMinutes
	if limit <= 0 {
		limit = 15
	}
	rows, err := h.Store.ListMinuteAverages(c.Request.Context(), limit)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("chart query failed", zap.Error(err))
		}
		Fail(c, http.StatusInternalServerError, CodeInternalError)
		return
	}
	points := make([]chartPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, chartPoint{
			MinuteLabel: r.MinuteLabel,
			// Cents → dollars for the chart axis.
			Price: math.Round(r.AvgPriceCents) / 100,
		})
	}
	c.JSON(http.StatusOK, points)
}

// @Summary Stream new price samples over WebSocket
// @Tags price
// @Router /api/v1/price/stream [get]
func (h *PriceHandler) stream(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Debug("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream aborted")

	ctx := c.Request.Context()
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	var lastID uint64
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "server shutting down")
			return
		case <-ticker.C:
			sample, err := h.Store.LatestPriceSample(ctx)
			if err != nil || sample == nil || sample.ID == lastID {
				continue
			}
			lastID = sample.ID
			payload, err := json.Marshal(sample)
			if err != nil {
				continue
			}
			if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
				return
			}
		}
	}
}
