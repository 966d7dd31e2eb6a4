package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"csv-chat/internal/view"
)

// NewRouter configura el router de Gin con middlewares, la página y la API.
func NewRouter(
	logger *zap.Logger,
	chatH *ChatHandler,
	viewerMW gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging y recovery.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery())
	r.SetHTMLTemplate(view.Templates())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Página y sus intenciones (formularios HTML o JSON).
	ui := r.Group("/", viewerMW)
	ui.GET("/", chatH.ShowPage)
	ui.POST("/conversations/:id/select", chatH.SelectConversation)
	ui.POST("/conversations/new", chatH.NewChat)
	ui.POST("/messages", chatH.SendMessage)
	ui.POST("/sidebar/toggle", chatH.ToggleSidebar)
	ui.POST("/session/reset", chatH.ResetSession)

	api := r.Group("/api", jsonContentTypeMiddleware(), viewerMW)
	api.GET("/view", chatH.GetView)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if viewerID, ok := GetViewerID(c); ok {
			fields = append(fields, zap.String("viewer_id", viewerID))
		}
		logger.Info("request", fields...)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
