package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"csv-chat/internal/service"
)

const (
	viewerCookieName = "viewer"
	viewerIDKey      = "viewer_id"
)

// ViewerSessionMiddleware asegura que cada navegador tenga una cookie de
// visitante válida y guarda su id en el contexto. No es autenticación.
func ViewerSessionMiddleware(logger *zap.Logger, tokens *service.ViewerTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "viewer sessions not configured"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		if raw, err := c.Cookie(viewerCookieName); err == nil && raw != "" {
			claims, err := tokens.Parse(ctx, raw)
			if err == nil {
				c.Set(viewerIDKey, claims.ViewerID)
				c.Next()
				return
			}
			logger.Debug("viewer token rejected", zap.Error(err))
		}

		token, viewerID, err := tokens.Issue(ctx)
		if err != nil {
			logger.Error("issue viewer token failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
			c.Abort()
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(viewerCookieName, token, int(tokens.TTL().Seconds()), "/", "", false, true)
		c.Set(viewerIDKey, viewerID)
		c.Next()
	}
}

// GetViewerID obtiene el id de visitante desde el contexto.
func GetViewerID(c *gin.Context) (string, bool) {
	val, ok := c.Get(viewerIDKey)
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}
