package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/simp-lee/storeadmin/internal/domain"
)

const (
	defaultRemoteTimeout = 10 * time.Second
	remotePageSize       = 100
	// maxRemotePages bounds Load so a misbehaving server cannot loop forever.
	maxRemotePages = 1000
)

// RemoteConfig configures the REST API backend.
type RemoteConfig struct {
	BaseURL string
	Timeout time.Duration
	Session domain.Session
	// HTTPClient overrides the instrumented default client.
	HTTPClient *http.Client
}

// Remote is a collection store backed by the admin REST API. Query
// evaluation happens on the server, so Remote also implements domain.Lister.
type Remote struct {
	base     *url.URL
	client   *http.Client
	session  domain.Session
	maxPages int
}

// NewRemote validates cfg and builds a Remote store.
func NewRemote(cfg RemoteConfig) (*Remote, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("remote base url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse remote base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("remote base url must be http or https, got %q", base.Scheme)
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultRemoteTimeout
		}
		client = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Remote{base: base, client: client, session: cfg.Session, maxPages: maxRemotePages}, nil
}

// List asks the server for one page of the collection.
func (r *Remote) List(ctx context.Context, collection string, q domain.Query, _ domain.ListSpec) (*domain.PageResult, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	for k, v := range q.Filter {
		if v != "" && v != domain.FilterAll {
			params.Set(k, v)
		}
	}
	if !q.CreatedAfter.IsZero() {
		params.Set("created_after", domain.FormatTime(q.CreatedAfter))
	}

	var page domain.PageResult
	if err := r.do(ctx, http.MethodGet, collection, params, nil, &page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []domain.Record{}
	}
	return &page, nil
}

// Load pages through the whole collection. A collection with more than
// maxRemotePages pages is an error rather than a silently truncated result.
func (r *Remote) Load(ctx context.Context, collection string) ([]domain.Record, error) {
	all := []domain.Record{}
	for page := 1; ; page++ {
		res, err := r.List(ctx, collection, domain.Query{Page: page, Limit: remotePageSize}, domain.ListSpec{})
		if err != nil {
			return nil, err
		}
		all = append(all, res.Data...)
		if len(res.Data) == 0 || page >= res.Meta.LastPage {
			return all, nil
		}
		if page >= r.maxPages {
			return nil, domain.NewAppError(domain.CodeTransport,
				fmt.Sprintf("remote collection %s has %d pages, more than the %d that can be loaded", collection, res.Meta.LastPage, r.maxPages), nil)
		}
	}
}

// Save is not offered by the REST API.
func (r *Remote) Save(context.Context, string, []domain.Record) error {
	return domain.NewAppError(domain.CodeValidation, "remote backend does not support replacing a collection", nil)
}

// Get fetches one record.
func (r *Remote) Get(ctx context.Context, collection string, id int64) (domain.Record, error) {
	var rec domain.Record
	if err := r.do(ctx, http.MethodGet, itemPath(collection, id), nil, nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Create posts a new record; the server assigns id and createdAt.
func (r *Remote) Create(ctx context.Context, collection string, fields domain.Record) (domain.Record, error) {
	var rec domain.Record
	if err := r.do(ctx, http.MethodPost, collection, nil, fields, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update sends a partial update.
func (r *Remote) Update(ctx context.Context, collection string, id int64, fields domain.Record) (domain.Record, error) {
	var rec domain.Record
	if err := r.do(ctx, http.MethodPatch, itemPath(collection, id), nil, fields, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a record. A 404 from the server counts as success.
func (r *Remote) Delete(ctx context.Context, collection string, id int64) error {
	err := r.do(ctx, http.MethodDelete, itemPath(collection, id), nil, nil, nil)
	if domain.IsNotFound(err) {
		return nil
	}
	return err
}

// LoadDocument fetches a singleton document such as settings.
func (r *Remote) LoadDocument(ctx context.Context, name string) (domain.Record, error) {
	doc := domain.Record{}
	if err := r.do(ctx, http.MethodGet, name, nil, nil, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SaveDocument replaces a singleton document.
func (r *Remote) SaveDocument(ctx context.Context, name string, doc domain.Record) (domain.Record, error) {
	out := domain.Record{}
	if err := r.do(ctx, http.MethodPut, name, nil, doc, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func itemPath(collection string, id int64) string {
	return collection + "/" + strconv.FormatInt(id, 10)
}

func (r *Remote) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := r.base.JoinPath(path)
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return domain.NewAppError(domain.CodeValidation, "request body is not serializable", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return domain.NewAppError(domain.CodeTransport, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+r.session.Token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return domain.NewAppError(domain.CodeTransport, "remote request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewAppError(domain.CodeTransport, "read remote response", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return statusError(resp.StatusCode, raw)
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.NewAppError(domain.CodeTransport, "decode remote response", err)
	}
	return nil
}

// statusError maps an HTTP failure to a domain error, keeping the server's
// message when the body is an error envelope.
func statusError(status int, body []byte) error {
	var envelope struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &envelope)
	msg := envelope.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	cause := fmt.Errorf("remote status %d", status)

	switch status {
	case http.StatusNotFound:
		return domain.NewAppError(domain.CodeNotFound, msg, cause)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.NewAppError(domain.CodeValidation, msg, cause)
	case http.StatusConflict:
		return domain.NewAppError(domain.CodeAlreadyExists, msg, cause)
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewAppError(domain.CodeUnauthorized, msg, cause)
	default:
		return domain.NewAppError(domain.CodeTransport, msg, cause)
	}
}
