package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"guessgame/internal/models"
)

const playerKey = "auth.player"

// PlayerStore is the slice of the repository the middleware needs for
// upsert-on-read.
type PlayerStore interface {
	GetPlayerByExternalID(ctx context.Context, externalID string) (*models.Player, error)
	CreatePlayer(ctx context.Context, item *models.Player) error
}

// Middleware verifies the bearer token and loads the caller's player row,
// creating it with score 0 on first sight of a new identity. When disabled,
// the identity comes from the X-Player header (local development).
func Middleware(j JWT, store PlayerStore, logger *zap.Logger, disabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var identity string
		if disabled {
			identity = strings.TrimSpace(c.GetHeader("X-Player"))
			if identity == "" {
				identity = "dev"
			}
		} else {
			tok := bearerToken(c.GetHeader("Authorization"))
			if tok == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			claims, err := j.Verify(tok)
			if err != nil || strings.TrimSpace(claims.Subject) == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			identity = claims.Subject
		}

		ctx := c.Request.Context()
		player, err := store.GetPlayerByExternalID(ctx, identity)
		if err != nil {
			abortInternal(c, logger, err)
			return
		}
		if player == nil {
			player = &models.Player{ExternalID: identity, Score: 0}
			if err := store.CreatePlayer(ctx, player); err != nil {
				// A concurrent first request may have won the unique-index
				// race; re-read before giving up.
				player, err = store.GetPlayerByExternalID(ctx, identity)
				if err != nil || player == nil {
					abortInternal(c, logger, err)
					return
				}
			}
		}

		c.Set(playerKey, player)
		c.Next()
	}
}

// PlayerFrom returns the player resolved by Middleware, or nil outside an
// authenticated route.
func PlayerFrom(c *gin.Context) *models.Player {
	v, ok := c.Get(playerKey)
	if !ok {
		return nil
	}
	p, ok := v.(*models.Player)
	if !ok {
		return nil
	}
	return p
}

func abortInternal(c *gin.Context, logger *zap.Logger, err error) {
	if logger != nil {
		logger.Error("player lookup failed", zap.Error(err))
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
}

func bearerToken(v string) string {
	v = strings.TrimSpace(v)
	parts := strings.SplitN(v, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
