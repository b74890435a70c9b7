// Package rest implements the service.Service interface against the
// tenant-scoped item REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/googleapi"

	"itemsync/internal/config"
	"itemsync/internal/service"
)

const (
	// APITimeout is the default timeout for API calls.
	APITimeout = 5 * time.Second

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-Id"

	// imageField is the multipart form field the upload endpoint reads.
	imageField = "image"
)

// Client implements service.Service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tenant     string
	timeout    time.Duration
	logger     *log.Logger
}

// New creates a client from configuration.
// A nil logger discards request logs.
func New(cfg *config.Config, logger *log.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Tenant) == "" {
		return nil, fmt.Errorf("tenant not configured")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q", cfg.BaseURL)
	}

	c := NewWithHTTPClient(&http.Client{}, cfg.BaseURL, cfg.Tenant)
	if cfg.Timeout > 0 {
		c.timeout = cfg.Timeout
	}
	if logger != nil {
		c.logger = logger
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(httpClient *http.Client, baseURL, tenant string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		tenant:     tenant,
		timeout:    APITimeout,
		logger:     log.New(io.Discard, "", 0),
	}
}

// SetTimeout overrides the per-call timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.timeout = d
}

// List returns one page of items in server order.
func (c *Client) List(ctx context.Context, page, pageSize int) ([]service.Item, error) {
	if page < 1 {
		return nil, &service.ValidationError{Field: "page", Err: fmt.Errorf("must be >= 1, got %d", page)}
	}
	if pageSize < 1 {
		return nil, &service.ValidationError{Field: "pageSize", Err: fmt.Errorf("must be >= 1, got %d", pageSize)}
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))

	var items []service.Item
	if err := c.do(ctx, "list", http.MethodGet, "/items", query, nil, "", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns a single item.
func (c *Client) Get(ctx context.Context, id int64) (service.Item, error) {
	var item service.Item
	if err := c.do(ctx, "get", http.MethodGet, itemPath(id), nil, nil, "", &item); err != nil {
		return service.Item{}, err
	}
	return item, nil
}

// Create creates a new item.
func (c *Client) Create(ctx context.Context, name string) (service.Item, error) {
	if err := service.ValidateName(name); err != nil {
		return service.Item{}, err
	}

	body, err := json.Marshal(struct {
		Name string `json:"name"`
	}{Name: name})
	if err != nil {
		return service.Item{}, fmt.Errorf("create: encode request: %w", err)
	}

	var item service.Item
	if err := c.do(ctx, "create", http.MethodPost, "/items", nil, bytes.NewReader(body), "application/json", &item); err != nil {
		return service.Item{}, err
	}
	return item, nil
}

// Update applies a partial update. Only the fields set on patch are sent.
func (c *Client) Update(ctx context.Context, id int64, patch service.Patch) (service.Item, error) {
	body, err := json.Marshal(patch)
	if err != nil {
		return service.Item{}, fmt.Errorf("update: encode request: %w", err)
	}

	var item service.Item
	if err := c.do(ctx, "update", http.MethodPatch, itemPath(id), nil, bytes.NewReader(body), "application/json", &item); err != nil {
		return service.Item{}, err
	}
	return item, nil
}

// Delete removes an item.
func (c *Client) Delete(ctx context.Context, id int64) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, "delete", http.MethodDelete, itemPath(id), nil, nil, "", &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// UploadBinary uploads data as the multipart "image" field.
func (c *Client) UploadBinary(ctx context.Context, data []byte, filename string) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, imageField, quoteEscaper.Replace(filename)))
	header.Set("Content-Type", http.DetectContentType(data))

	part, err := mw.CreatePart(header)
	if err != nil {
		return "", &service.UploadError{Err: err}
	}
	if _, err := part.Write(data); err != nil {
		return "", &service.UploadError{Err: err}
	}
	if err := mw.Close(); err != nil {
		return "", &service.UploadError{Err: err}
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, "upload", http.MethodPost, "/images/upload", nil, &buf, mw.FormDataContentType(), &resp); err != nil {
		return "", &service.UploadError{Err: err}
	}
	if resp.URL == "" {
		return "", &service.UploadError{Err: errors.New("response missing url")}
	}
	return resp.URL, nil
}

// do issues one request and decodes a 2xx JSON body into out.
// No response at all yields *service.NetworkError; a non-2xx response yields
// *service.ApplicationError with the body verbatim.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + "/" + url.PathEscape(c.tenant) + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("%s %s id=%s network error after %s: %v", method, path, reqID, time.Since(start), err)
		return &service.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Printf("%s %s id=%s status=%d in %s", method, path, reqID, resp.StatusCode, time.Since(start))

	if err := googleapi.CheckResponse(resp); err != nil {
		var detail string
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			detail = gerr.Body
		}
		return &service.ApplicationError{Op: op, Status: resp.StatusCode, Body: detail}
	}

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
	} else {
		err = json.NewDecoder(resp.Body).Decode(out)
	}
	if err != nil {
		if isTransportError(ctx, err) {
			return &service.NetworkError{Op: op, Err: err}
		}
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// isTransportError reports whether a body read failed because the
// connection or the call's deadline did, rather than because the body was
// malformed.
func isTransportError(ctx context.Context, err error) bool {
	if ctx.Err() != nil || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func itemPath(id int64) string {
	return "/items/" + strconv.FormatInt(id, 10)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
