package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"guessgame/internal/auth"
	"guessgame/internal/game"
	"guessgame/internal/models"
)

// GuessService is the lifecycle engine surface the handler needs.
type GuessService interface {
	CreateGuess(ctx context.Context, playerID uint64, dir game.Direction) (*models.Guess, error)
	ActiveGuess(ctx context.Context, playerID uint64) (*models.Guess, error)
	Resolve(ctx context.Context, playerID uint64) (*game.ResolveResult, error)
}

type GuessHandler struct {
	Service GuessService
	Logger  *zap.Logger
}

func (h *GuessHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/guesses")
	g.POST("", h.create)
	g.GET("/active", h.active)
	g.POST("/active/resolve", h.resolve)
}

type createGuessRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// @Summary Create a guess
// @Tags guesses
// @Accept json
// @Param request body createGuessRequest true "up or down"
// @Success 201 {object} guessView
// @Failure 403 {object} errorBody "price_not_available"
// @Failure 409 {object} errorBody "active_guess_exists"
// @Failure 422 {object} errorBody
// @Router /api/v1/guesses [post]
func (h *GuessHandler) create(c *gin.Context) {
	player := auth.PlayerFrom(c)
	if player == nil {
		Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createGuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusUnprocessableEntity, CodeValidationError)
		return
	}
	dir, ok := game.ParseDirection(req.Direction)
	if !ok {
		Fail(c, http.StatusUnprocessableEntity, CodeValidationError)
		return
	}

	g, err := h.Service.CreateGuess(c.Request.Context(), player.ID, dir)
	switch {
	case errors.Is(err, game.ErrPriceUnavailable):
		Fail(c, http.StatusForbidden, CodePriceNotAvailable)
	case errors.Is(err, game.ErrActiveGuessExists):
		Fail(c, http.StatusConflict, CodeActiveGuessExists)
	case err != nil:
		if h.Logger != nil {
			h.Logger.Error("create guess failed", zap.Error(err))
		}
		Fail(c, http.StatusInternalServerError, CodeInternalError)
	default:
		c.JSON(http.StatusCreated, newGuessView(g))
	}
}

// @Summary Get the active guess
// @Tags guesses
// @Success 200 {object} guessView "empty object when no guess is active"
// @Failure 403 {object} errorBody "price_not_available"
// @Router /api/v1/guesses/active [get]
func (h *GuessHandler) active(c *gin.Context) {
	player := auth.PlayerFrom(c)
	if player == nil {
		Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	g, err := h.Service.ActiveGuess(c.Request.Context(), player.ID)
	switch {
	case errors.Is(err, game.ErrPriceUnavailable):
		Fail(c, http.StatusForbidden, CodePriceNotAvailable)
	case err != nil:
		if h.Logger != nil {
			h.Logger.Error("active guess lookup failed", zap.Error(err))
		}
		Fail(c, http.StatusInternalServerError, CodeInternalError)
	case g == nil:
		c.JSON(http.StatusOK, gin.H{})
	default:
		c.JSON(http.StatusOK, newGuessView(g))
	}
}

// @Summary Resolve the active guess
// @Tags guesses
// @Success 200 {object} map[string]any "player, wasCorrect, guess"
// @Failure 403 {object} errorBody "price_not_available or price_stale"
// @Failure 404 {object} errorBody "no_active_guess"
// @Router /api/v1/guesses/active/resolve [post]
func (h *GuessHandler) resolve(c *gin.Context) {
	player := auth.PlayerFrom(c)
	if player == nil {
		Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	res, err := h.Service.Resolve(c.Request.Context(), player.ID)
	switch {
	case errors.Is(err, game.ErrPriceUnavailable):
		Fail(c, http.StatusForbidden, CodePriceNotAvailable)
	case errors.Is(err, game.ErrPriceStale):
		Fail(c, http.StatusForbidden, CodePriceStale)
	case errors.Is(err, game.ErrNoActiveGuess):
		Fail(c, http.StatusNotFound, CodeNoActiveGuess)
	case err != nil:
		if h.Logger != nil {
			h.Logger.Error("resolve guess failed", zap.Error(err))
		}
		Fail(c, http.StatusInternalServerError, CodeInternalError)
	default:
		c.JSON(http.StatusOK, gin.H{
			"player":     res.Player,
			"wasCorrect": res.WasCorrect,
			"guess":      newGuessView(res.Guess),
		})
	}
}
