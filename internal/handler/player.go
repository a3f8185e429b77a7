package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guessgame/internal/auth"
)

type PlayerHandler struct{}

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	r.GET("/me", h.me)
}

// @Summary Get the authenticated player
// @Tags players
// @Success 200 {object} models.Player
// @Router /api/v1/me [get]
func (h *PlayerHandler) me(c *gin.Context) {
	player := auth.PlayerFrom(c)
	if player == nil {
		Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	c.JSON(http.StatusOK, player)
}
