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
	"github.com/simp-lee/logger"
)

// decodeLogLines parses JSON log output, one record per line.
func decodeLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("log line is not JSON: %v (%s)", err, line)
		}
		out = append(out, rec)
	}
	return out
}

func setupAccessLogRouter(log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(log))
	api := r.Group("/api/v1")
	api.GET("/orders/:id", func(c *gin.Context) {
		c.String(http.StatusOK, `{"id":7}`)
	})
	api.GET("/products/:id", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "product not found", "data": nil})
	})
	api.GET("/settings", func(c *gin.Context) {
		_ = c.Error(errors.New("store unavailable"))
		c.Status(http.StatusServiceUnavailable)
	})
	return r
}

func TestLogger_LevelFollowsStatus(t *testing.T) {
	tests := []struct {
		path      string
		wantLevel string
		wantCode  float64
	}{
		{"/api/v1/orders/7", "INFO", http.StatusOK},
		{"/api/v1/products/9", "WARN", http.StatusNotFound},
		{"/api/v1/settings", "ERROR", http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var buf bytes.Buffer
			r := setupAccessLogRouter(slog.New(slog.NewJSONHandler(&buf, nil)))

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			lines := decodeLogLines(t, &buf)
			if len(lines) != 1 {
				t.Fatalf("expected one access log line, got %d", len(lines))
			}
			if lines[0]["level"] != tt.wantLevel {
				t.Errorf("level = %v; want %s", lines[0]["level"], tt.wantLevel)
			}
			if lines[0]["status"] != tt.wantCode {
				t.Errorf("status = %v; want %v", lines[0]["status"], tt.wantCode)
			}
		})
	}
}

func TestLogger_RecordsRouteAndSize(t *testing.T) {
	var buf bytes.Buffer
	r := setupAccessLogRouter(slog.New(slog.NewJSONHandler(&buf, nil)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/7", nil))

	rec := decodeLogLines(t, &buf)[0]
	if rec["msg"] != "request" || rec["method"] != http.MethodGet {
		t.Errorf("unexpected record: %v", rec)
	}
	if rec["path"] != "/api/v1/orders/7" {
		t.Errorf("path = %v", rec["path"])
	}
	if rec["route"] != "/api/v1/orders/:id" {
		t.Errorf("route = %v; want the pattern", rec["route"])
	}
	if rec["size"] != float64(w.Body.Len()) {
		t.Errorf("size = %v; want %d", rec["size"], w.Body.Len())
	}
	if _, ok := rec["latency"]; !ok {
		t.Error("missing latency")
	}
	if _, ok := rec["errors"]; ok {
		t.Error("errors must be omitted when the handler reported none")
	}
}

func TestLogger_IncludesHandlerErrors(t *testing.T) {
	var buf bytes.Buffer
	r := setupAccessLogRouter(slog.New(slog.NewJSONHandler(&buf, nil)))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil))

	rec := decodeLogLines(t, &buf)[0]
	if errs, _ := rec["errors"].(string); !strings.Contains(errs, "store unavailable") {
		t.Errorf("errors = %v", rec["errors"])
	}
}

func TestLogger_UnmatchedRouteHasEmptyRoute(t *testing.T) {
	var buf bytes.Buffer
	r := setupAccessLogRouter(slog.New(slog.NewJSONHandler(&buf, nil)))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	rec := decodeLogLines(t, &buf)[0]
	if rec["route"] != "" || rec["status"] != float64(http.StatusNotFound) {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestLogger_AccessLineCarriesResponseRequestID(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(
		logger.WithConsoleWriter(&buf),
		logger.WithConsoleFormat(logger.FormatJSON),
		logger.WithConsoleColor(false),
		logger.WithMiddleware(logger.ContextMiddleware()),
	)
	if err != nil {
		t.Fatalf("logger.New error: %v", err)
	}
	defer log.Close()

	r := setupAccessLogRouter(log.Logger)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/7", nil))

	id := w.Header().Get("X-Request-ID")
	if id == "" {
		t.Fatal("missing X-Request-ID response header")
	}
	if want := `"request_id":"` + id + `"`; !strings.Contains(buf.String(), want) {
		t.Errorf("expected log to contain %s, got:\n%s", want, buf.String())
	}
}
