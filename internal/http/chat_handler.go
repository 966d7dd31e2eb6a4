package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"csv-chat/internal/service"
	"csv-chat/internal/view"
)

// ChatHandler mantiene dependencias para la página de chat y sus intenciones.
type ChatHandler struct {
	logger  *zap.Logger
	viewers *service.ViewerRegistry
	tokens  *service.ViewerTokenService
	limiter service.SendLimiter
	dates   *view.DateFormatter
	now     func() time.Time
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(
	logger *zap.Logger,
	viewers *service.ViewerRegistry,
	tokens *service.ViewerTokenService,
	limiter service.SendLimiter,
	dates *view.DateFormatter,
) *ChatHandler {
	if limiter == nil {
		limiter = service.NewUnlimitedSendLimiter()
	}
	return &ChatHandler{
		logger:  logger,
		viewers: viewers,
		tokens:  tokens,
		limiter: limiter,
		dates:   dates,
		now:     time.Now,
	}
}

// ShowPage maneja GET /.
func (h *ChatHandler) ShowPage(c *gin.Context) {
	vm, ok := h.viewModel(c)
	if !ok {
		return
	}
	h.renderHTML(c, http.StatusOK, vm)
}

// GetView maneja GET /api/view.
func (h *ChatHandler) GetView(c *gin.Context) {
	vm, ok := h.viewModel(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"view": h.page(vm)})
}

// SelectConversation maneja POST /conversations/:id/select.
func (h *ChatHandler) SelectConversation(c *gin.Context) {
	vm, ok := h.viewModel(c)
	if !ok {
		return
	}
	vm.SelectConversation(c.Param("id"))
	h.respond(c, http.StatusOK, vm, nil)
}

// SendMessage maneja POST /messages. El contenido en blanco se ignora aquí:
// el ViewModel no valida.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	vm, ok := h.viewModel(c)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" form:"content"`
	}
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("invalid send message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		h.respond(c, http.StatusOK, vm, nil)
		return
	}

	viewerID, _ := GetViewerID(c)
	if !h.limiter.Allow(c.Request.Context(), viewerID) {
		h.logger.Warn("send rate limited", zap.String("viewer_id", viewerID))
		if wantsJSON(c) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many messages", "view": h.page(vm)})
			return
		}
		h.renderHTML(c, http.StatusTooManyRequests, vm)
		return
	}

	msg := vm.SendMessage(req.Content)
	h.respond(c, http.StatusCreated, vm, gin.H{"message": msg})
}

// ToggleSidebar maneja POST /sidebar/toggle.
func (h *ChatHandler) ToggleSidebar(c *gin.Context) {
	vm, ok := h.viewModel(c)
	if !ok {
		return
	}
	vm.ToggleSidebar()
	h.respond(c, http.StatusOK, vm, nil)
}

// NewChat maneja POST /conversations/new. Solo registra la intención.
func (h *ChatHandler) NewChat(c *gin.Context) {
	vm, ok := h.viewModel(c)
	if !ok {
		return
	}
	vm.NewChat()
	h.respond(c, http.StatusAccepted, vm, nil)
}

// ResetSession maneja POST /session/reset: descarta el estado del visitante
// y revoca su cookie.
func (h *ChatHandler) ResetSession(c *gin.Context) {
	viewerID, ok := GetViewerID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "viewer session missing"})
		return
	}
	h.viewers.Forget(viewerID)
	if raw, err := c.Cookie(viewerCookieName); err == nil && h.tokens != nil {
		if err := h.tokens.Revoke(c.Request.Context(), raw); err != nil {
			h.logger.Debug("revoke viewer token failed", zap.Error(err))
		}
	}
	c.SetCookie(viewerCookieName, "", -1, "/", "", false, true)

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"reset": true})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *ChatHandler) viewModel(c *gin.Context) (*service.ChatViewModel, bool) {
	viewerID, ok := GetViewerID(c)
	if !ok || h.viewers == nil {
		h.logger.Error("viewer state unavailable")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "viewer session missing"})
		return nil, false
	}
	return h.viewers.Get(viewerID), true
}

func (h *ChatHandler) page(vm *service.ChatViewModel) view.ChatPage {
	return view.BuildChatPage(vm.State(), h.now(), h.dates)
}

func (h *ChatHandler) renderHTML(c *gin.Context, status int, vm *service.ChatViewModel) {
	c.HTML(status, view.ChatTemplate, view.HTMLData{
		Page:   h.page(vm),
		Locale: h.dates.Locale(),
	})
}

// respond devuelve la vista recalculada en JSON o redirige a la página.
func (h *ChatHandler) respond(c *gin.Context, status int, vm *service.ChatViewModel, extra gin.H) {
	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	body := gin.H{"view": h.page(vm)}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func wantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return c.ContentType() == "application/json"
}
