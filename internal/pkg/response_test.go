package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/storeadmin/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// statusChange has the shape of an order status update body.
type statusChange struct {
	Status         string `json:"status" binding:"required,oneof=received viewed processing shipped delivered cancelled"`
	TrackingNumber string `json:"tracking_number" binding:"omitempty,max=64"`
}

// customerContact exercises the string length and email rules.
type customerContact struct {
	Name  string `json:"customerName" binding:"required,min=2"`
	Email string `json:"customerEmail" binding:"required,email"`
	Note  string // no json tag
}

func newResponseTestContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/api/v1/orders/7/status", strings.NewReader(body))
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal envelope: %v (%s)", err, w.Body.String())
	}
	return resp
}

func TestSuccessResponsesAreBare(t *testing.T) {
	order := domain.Record{"id": 7, "status": "shipped"}
	tests := []struct {
		name   string
		write  func(c *gin.Context)
		status int
		body   string
	}{
		{"ok", func(c *gin.Context) { Success(c, order) }, http.StatusOK, `{"id":7,"status":"shipped"}`},
		{"created", func(c *gin.Context) { Created(c, order) }, http.StatusCreated, `{"id":7,"status":"shipped"}`},
		{"no content", func(c *gin.Context) { NoContent(c); c.Writer.WriteHeaderNow() }, http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newResponseTestContext(http.MethodGet, "")
			tt.write(c)

			if w.Code != tt.status {
				t.Errorf("status = %d; want %d", w.Code, tt.status)
			}
			if got := strings.TrimSpace(w.Body.String()); got != tt.body {
				t.Errorf("body = %s; want %s", got, tt.body)
			}
		})
	}
}

func TestList_Shape(t *testing.T) {
	c, w := newResponseTestContext(http.MethodGet, "")
	List(c, &domain.PageResult{
		Data: []domain.Record{{"id": 4}, {"id": 3}},
		Meta: domain.PageMeta{CurrentPage: 2, PerPage: 2, Total: 5, LastPage: 3, From: 3, To: 4},
	})

	want := `{"data":[{"id":4},{"id":3}],"meta":{"current_page":2,"per_page":2,"total":5,"last_page":3,"from":3,"to":4}}`
	if got := strings.TrimSpace(w.Body.String()); got != want {
		t.Errorf("body = %s\nwant   %s", got, want)
	}

	c, w = newResponseTestContext(http.MethodGet, "")
	List(c, &domain.PageResult{Meta: domain.PageMeta{CurrentPage: 1, PerPage: 10, LastPage: 1, From: 1}})
	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("nil data must render as [], got %s", w.Body.String())
	}
}

func TestError_Envelope(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", domain.NewAppError(domain.CodeNotFound, "order not found", nil), http.StatusNotFound, "order not found"},
		{"invalid query", fmt.Errorf("list: %w", domain.NewAppError(domain.CodeInvalidQuery, "limit must be at least 1", nil)), http.StatusBadRequest, "limit must be at least 1"},
		{"remote failure", domain.NewAppError(domain.CodeTransport, "remote request failed", errors.New("dial tcp: refused")), http.StatusBadGateway, "remote request failed"},
		{"unclassified hides detail", errors.New("sql: connection reset"), http.StatusInternalServerError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newResponseTestContext(http.MethodGet, "")
			Error(c, tt.err)

			if w.Code != tt.status {
				t.Errorf("status = %d; want %d", w.Code, tt.status)
			}
			resp := decodeEnvelope(t, w)
			if resp.Code != tt.status || resp.Message != tt.message || resp.Data != nil {
				t.Errorf("envelope = %+v; want code %d message %q", resp, tt.status, tt.message)
			}
			if strings.Contains(w.Body.String(), "refused") || strings.Contains(w.Body.String(), "sql:") {
				t.Errorf("wrapped cause leaked: %s", w.Body.String())
			}
		})
	}
}

func TestBindRecord(t *testing.T) {
	c, _ := newResponseTestContext(http.MethodPost, `{"name":"Mug","stock":5,"tags":["kitchen"]}`)
	rec, ok := BindRecord(c)
	if !ok {
		t.Fatal("expected BindRecord to succeed")
	}
	if rec["name"] != "Mug" || rec.Float("stock") != 5 {
		t.Errorf("unexpected record %v", rec)
	}

	for _, body := range []string{`[{"id":1}]`, `null`, `"text"`, `{"broken`, ``} {
		c, w := newResponseTestContext(http.MethodPost, body)
		if _, ok := BindRecord(c); ok {
			t.Errorf("body %q: expected failure", body)
			continue
		}
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status %d", body, w.Code)
		}
		if resp := decodeEnvelope(t, w); resp.Message != "request body must be a JSON object" {
			t.Errorf("body %q: message %q", body, resp.Message)
		}
	}
}

func TestBindAndValidate_StatusChange(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantFields map[string]string
	}{
		{
			name:   "valid with tracking number",
			body:   `{"status":"shipped","tracking_number":"1Z999AA10123456784"}`,
			wantOK: true,
		},
		{
			name:       "missing status",
			body:       `{}`,
			wantFields: map[string]string{"status": "This field is required"},
		},
		{
			name:       "unknown status",
			body:       `{"status":"lost"}`,
			wantFields: map[string]string{"status": "Must be one of: received, viewed, processing, shipped, delivered, cancelled"},
		},
		{
			name:       "tracking number too long",
			body:       fmt.Sprintf(`{"status":"shipped","tracking_number":%q}`, strings.Repeat("9", 65)),
			wantFields: map[string]string{"tracking_number": "Must be at most 64 characters"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newResponseTestContext(http.MethodPatch, tt.body)
			var req statusChange
			ok := BindAndValidate(c, &req)

			if ok != tt.wantOK {
				t.Fatalf("BindAndValidate = %v; want %v (%s)", ok, tt.wantOK, w.Body.String())
			}
			if ok {
				if w.Body.Len() != 0 {
					t.Errorf("nothing must be written on success, got %s", w.Body.String())
				}
				if req.Status != "shipped" || req.TrackingNumber == "" {
					t.Errorf("bound %+v", req)
				}
				return
			}

			var resp ValidationErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal: %v", err)
			}
			if w.Code != http.StatusBadRequest || resp.Message != "validation error" {
				t.Errorf("status %d message %q", w.Code, resp.Message)
			}
			if len(resp.Errors) != len(tt.wantFields) {
				t.Errorf("errors = %v; want %v", resp.Errors, tt.wantFields)
			}
			for field, msg := range tt.wantFields {
				if resp.Errors[field] != msg {
					t.Errorf("errors[%s] = %q; want %q", field, resp.Errors[field], msg)
				}
			}
		})
	}
}

func TestBindAndValidate_UsesJSONFieldNames(t *testing.T) {
	c, w := newResponseTestContext(http.MethodPost, `{"customerName":"J","customerEmail":"john-at-example"}`)
	var req customerContact
	if BindAndValidate(c, &req) {
		t.Fatal("expected validation failure")
	}

	var resp ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	want := map[string]string{
		"customerName":  "Must be at least 2 characters",
		"customerEmail": "Must be a valid email address",
	}
	for field, msg := range want {
		if resp.Errors[field] != msg {
			t.Errorf("errors[%s] = %q; want %q", field, resp.Errors[field], msg)
		}
	}
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	c, w := newResponseTestContext(http.MethodPatch, `{"status":`)
	var req statusChange
	if BindAndValidate(c, &req) {
		t.Fatal("expected failure")
	}
	if resp := decodeEnvelope(t, w); w.Code != http.StatusBadRequest || resp.Message != "bad request" {
		t.Errorf("status %d message %q", w.Code, resp.Message)
	}
}

func TestValidationError_WithoutStructFallsBackToLowercase(t *testing.T) {
	c, w := newResponseTestContext(http.MethodPost, `{}`)
	var req customerContact
	err := c.ShouldBindJSON(&req)
	if err == nil {
		t.Fatal("expected binding error")
	}

	ValidationError(c, err)

	var resp ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	for _, field := range []string{"name", "email"} {
		if resp.Errors[field] != "This field is required" {
			t.Errorf("errors[%s] = %q", field, resp.Errors[field])
		}
	}
}

func TestParseJSONTagName(t *testing.T) {
	tests := map[string]string{
		"":                        "",
		"-":                       "",
		",omitempty":              "",
		"tracking_number":         "tracking_number",
		"customerEmail,omitempty": "customerEmail",
	}
	for tag, want := range tests {
		if got := parseJSONTagName(tag); got != want {
			t.Errorf("parseJSONTagName(%q) = %q; want %q", tag, got, want)
		}
	}
}
