package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/simp-lee/logger"
)

// echoRequestIDs answers with the id as seen by gin and by the request
// context, separated by a pipe.
func echoRequestIDs(c *gin.Context) {
	fromCtx := ""
	for _, a := range logger.FromContext(c.Request.Context()) {
		if a.Key == "request_id" {
			fromCtx = a.Value.String()
		}
	}
	c.String(http.StatusOK, GetRequestID(c)+"|"+fromCtx)
}

func serveWithRequestID(cfg RequestIDConfig, upstream string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(RequestIDWithConfig(cfg))
	r.GET("/api/v1/orders", echoRequestIDs)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	if upstream != "" {
		req.Header.Set(requestIDHeader, upstream)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID_SameIDInHeaderGinAndContext(t *testing.T) {
	w := serveWithRequestID(RequestIDConfig{}, "")

	ginID, ctxID, _ := strings.Cut(w.Body.String(), "|")
	if _, err := uuid.Parse(ginID); err != nil {
		t.Fatalf("expected a UUID, got %q: %v", ginID, err)
	}
	if ctxID != ginID {
		t.Errorf("context request_id = %q; want %q", ctxID, ginID)
	}
	if got := w.Header().Get(requestIDHeader); got != ginID {
		t.Errorf("%s header = %q; want %q", requestIDHeader, got, ginID)
	}
}

func TestRequestID_TrustedUpstream(t *testing.T) {
	remoteID := uuid.NewString()
	tests := []struct {
		name     string
		upstream string
		reused   bool
	}{
		{"id sent by the remote store client", remoteID, true},
		{"64 characters", strings.Repeat("f", 64), true},
		{"65 characters", strings.Repeat("f", 65), false},
		{"underscore", "order_7", false},
		{"space", "order 7", false},
		{"missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveWithRequestID(RequestIDConfig{TrustUpstream: true}, tt.upstream)
			id := w.Header().Get(requestIDHeader)

			if tt.reused {
				if id != tt.upstream {
					t.Errorf("id = %q; want upstream %q", id, tt.upstream)
				}
				return
			}
			if id == tt.upstream {
				t.Errorf("malformed upstream id %q was reused", tt.upstream)
			}
			if _, err := uuid.Parse(id); err != nil {
				t.Errorf("expected a generated UUID, got %q", id)
			}
		})
	}
}

func TestRequestID_UntrustedUpstreamIsReplaced(t *testing.T) {
	w := serveWithRequestID(RequestIDConfig{}, "client-chosen-id")

	if id := w.Header().Get(requestIDHeader); id == "client-chosen-id" {
		t.Fatal("upstream id must be ignored unless trusted")
	}
}

func TestRequestID_FreshPerRequest(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	seen := make(map[string]struct{}, 50)
	for range 50 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		id := w.Header().Get(requestIDHeader)
		if _, dup := seen[id]; dup {
			t.Fatalf("request id %q issued twice", id)
		}
		seen[id] = struct{}{}
	}
}

func TestGetRequestID_WithoutMiddleware(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := GetRequestID(c); got != "" {
		t.Errorf("GetRequestID = %q; want empty", got)
	}

	c.Set(requestIDContextKey, 42)
	if got := GetRequestID(c); got != "" {
		t.Errorf("GetRequestID with a non-string value = %q; want empty", got)
	}
}
