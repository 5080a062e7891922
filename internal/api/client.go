// Package api is the typed client of the classroom backend's REST surface.
// Every backend operation is one method; transport failures, non-2xx statuses
// and non-JSON bodies all come back as *Error so callers branch on a single
// error shape instead of catching exceptions per call. Mutating calls are
// never retried here: a retry is the user clicking again.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"classroomclient/internal/logging"
)

const basePath = "/api"

// jsonRaw keeps list endpoints shape-agnostic until sniffList sorts out
// whether the payload is a bare array or a wrapped one.
type jsonRaw = json.RawMessage

// TokenSource supplies the bearer token attached to authenticated calls. An
// empty token is not an error at this layer; the backend enforces auth.
type TokenSource interface {
	Token() string
}

// Error is the uniform failure value for every expected failure path: the
// backend's message verbatim when it sent one, the raw body text for
// non-JSON responses, a connectivity message for transport failures.
// StatusCode is zero when no response arrived.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

// StatusOf returns the HTTP status behind err, or zero for transport
// failures and non-facade errors.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
	log    *logging.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New builds a client for the backend at baseURL (scheme://host[:port],
// without the /api suffix). tokens may be nil for an unauthenticated client.
func New(baseURL string, tokens TokenSource, log *logging.Logger, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: 15 * time.Second},
		tokens: tokens,
		log:    log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do runs one JSON round trip. out may be nil for calls whose response body
// the caller ignores.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reqBody)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	raw, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Message: fmt.Sprintf("unexpected response shape: %v", err), StatusCode: http.StatusOK}
	}
	return nil
}

// roundTrip sends req and normalizes every expected failure into *Error. It
// returns the raw JSON body on success.
func (c *Client) roundTrip(req *http.Request) (json.RawMessage, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logCall(req, 0, start, err)
		return nil, &Error{Message: "cannot connect to server: " + err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logCall(req, resp.StatusCode, start, err)
		return nil, &Error{Message: "cannot read server response: " + err.Error(), StatusCode: resp.StatusCode}
	}
	c.logCall(req, resp.StatusCode, start, nil)

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json") && json.Valid(raw)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Message: errorMessage(raw, isJSON, resp.StatusCode), StatusCode: resp.StatusCode}
	}
	if !isJSON {
		return nil, &Error{
			Message:    fmt.Sprintf("server returned a non-JSON response: %s", snippet(raw)),
			StatusCode: resp.StatusCode,
		}
	}
	return raw, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.base + basePath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) logCall(req *http.Request, status int, start time.Time, err error) {
	if c.log == nil {
		return
	}
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
		c.log.Warn(req.Context(), "backend call failed", fields...)
		return
	}
	c.log.Debug(req.Context(), "backend call", fields...)
}

// errorMessage digs the human-readable message out of a failure body. The
// backend answers errors as {error}, {message}, a JSON string, or plain text
// depending on the endpoint.
func errorMessage(raw []byte, isJSON bool, status int) string {
	if isJSON {
		var obj struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &obj); err == nil {
			if obj.Error != "" {
				return obj.Error
			}
			if obj.Message != "" {
				return obj.Message
			}
		}
		var text string
		if err := json.Unmarshal(raw, &text); err == nil && text != "" {
			return text
		}
	}
	if msg := snippet(raw); msg != "" {
		return msg
	}
	return fmt.Sprintf("request failed with status %d", status)
}

func snippet(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	const max = 200
	if len(text) > max {
		return text[:max]
	}
	return text
}

// sniffList decodes a list response that arrives either as a bare array or
// wrapped in an object under wrapperKey ({"classes": [...]}).
func sniffList[T any](raw json.RawMessage, wrapperKey string) ([]T, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err == nil {
		if inner, ok := wrapper[wrapperKey]; ok {
			if err := json.Unmarshal(inner, &items); err == nil {
				return items, nil
			}
		}
	}
	return nil, &Error{Message: fmt.Sprintf("unexpected %s list shape: %s", wrapperKey, snippet(raw)), StatusCode: http.StatusOK}
}

// doMultipart uploads one file as multipart form data. The Content-Type
// header carries the boundary, so it is set from the writer rather than by
// hand.
func (c *Client) doMultipart(ctx context.Context, path, field, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("build POST %s: %w", path, err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	raw, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Message: fmt.Sprintf("unexpected response shape: %v", err), StatusCode: http.StatusOK}
	}
	return nil
}
