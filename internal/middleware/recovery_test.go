package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/pkg"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// setupRecoveryRouter installs Recovery first and RequestID second, the order
// the server uses, so panics are reported with the request id.
func setupRecoveryRouter(logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(logger), RequestIDWithConfig(RequestIDConfig{TrustUpstream: true}))
	r.GET("/api/v1/orders/:id", func(c *gin.Context) {
		panic(errors.New("decode order: unexpected field total=\"abc\""))
	})
	r.GET("/api/v1/orders", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": []any{}})
	})
	return r
}

func TestRecovery_PanicAnswersWithErrorEnvelope(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupRecoveryRouter(newTestLogger(&logBuf))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/7", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q; want JSON", ct)
	}

	var body pkg.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not the error envelope: %v (%s)", err, w.Body.String())
	}
	if body.Code != http.StatusInternalServerError || body.Message != "internal server error" || body.Data != nil {
		t.Errorf("envelope = %+v", body)
	}
	if strings.Contains(w.Body.String(), "decode order") {
		t.Errorf("panic value leaked to the client: %s", w.Body.String())
	}
}

func TestRecovery_LogsPanicWithRequestID(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupRecoveryRouter(newTestLogger(&logBuf))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/7", nil)
	req.Header.Set("X-Request-ID", "order-7-trace")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "order-7-trace" {
		t.Errorf("X-Request-ID = %q; want the upstream id", got)
	}

	out := logBuf.String()
	for _, want := range []string{
		"level=ERROR",
		`msg="panic recovered"`,
		"request_id=order-7-trace",
		"path=/api/v1/orders/7",
		"decode order",
		"stack=",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestRecovery_NoPanicPassesThrough(t *testing.T) {
	var logBuf bytes.Buffer
	r := setupRecoveryRouter(newTestLogger(&logBuf))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if logBuf.Len() != 0 {
		t.Errorf("expected no log output, got:\n%s", logBuf.String())
	}
}

func TestRecovery_NilLoggerUsesDefault(t *testing.T) {
	var logBuf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(newTestLogger(&logBuf))
	t.Cleanup(func() { slog.SetDefault(prev) })

	r := gin.New()
	r.Use(Recovery(nil))
	r.GET("/panic", func(c *gin.Context) { panic("nil logger") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(logBuf.String(), "nil logger") {
		t.Errorf("expected the default logger to record the panic, got:\n%s", logBuf.String())
	}
}
