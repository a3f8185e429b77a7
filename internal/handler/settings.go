package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"guessgame/internal/service"
)

type SettingsHandler struct {
	Settings *service.SystemSettingsService
}

func (h *SettingsHandler) Register(r *gin.RouterGroup) {
	s := r.Group("/settings")
	s.GET("", h.list)
	s.PUT("/:key", h.set)
}

// @Summary List feature switches
// @Tags settings
// @Success 200 {array} models.SystemSetting
// @Router /api/v1/settings [get]
func (h *SettingsHandler) list(c *gin.Context) {
	items, err := h.Settings.List(c.Request.Context())
	if err != nil {
		Fail(c, http.StatusInternalServerError, CodeInternalError)
		return
	}
	c.JSON(http.StatusOK, items)
}

type setSettingRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// @Summary Toggle a feature switch
// @Tags settings
// @Param key path string true "setting key"
// @Param request body setSettingRequest true "enabled flag"
// @Success 200 {object} map[string]any
// @Router /api/v1/settings/{key} [put]
func (h *SettingsHandler) set(c *gin.Context) {
	key := c.Param("key")
	var req setSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusUnprocessableEntity, CodeValidationError)
		return
	}
	if err := h.Settings.SetEnabled(c.Request.Context(), key, *req.Enabled); err != nil {
		Fail(c, http.StatusInternalServerError, CodeInternalError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "enabled": *req.Enabled})
}
