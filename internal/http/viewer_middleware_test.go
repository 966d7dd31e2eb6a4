package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"csv-chat/internal/service"
)

func TestViewerSessionMiddleware_ReplacesInvalidCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewViewerTokenService("secret", time.Hour, service.NewMemoryViewerTokenStore())

	r := gin.New()
	r.GET("/whoami", ViewerSessionMiddleware(zap.NewNop(), tokens), func(c *gin.Context) {
		id, ok := GetViewerID(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.String(http.StatusOK, id)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: viewerCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Fatalf("expected fresh viewer id, got %d %q", rec.Code, rec.Body.String())
	}
	var issued *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == viewerCookieName {
			issued = c
		}
	}
	if issued == nil || issued.Value == "garbage" || !issued.HttpOnly {
		t.Fatalf("expected new http-only cookie, got %+v", issued)
	}

	claims, err := tokens.Parse(req.Context(), issued.Value)
	if err != nil || claims.ViewerID != rec.Body.String() {
		t.Fatalf("expected cookie to carry viewer id, err=%v", err)
	}
}

func TestViewerSessionMiddleware_NotConfigured(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", ViewerSessionMiddleware(zap.NewNop(), nil), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
