package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxErrorBody = 4 << 10

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	Token() string
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

// StaticToken wraps a fixed token.
func StaticToken(tok string) TokenSource {
	return staticToken(tok)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets a whole-request timeout; zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     StaticToken(""),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != nil {
		return e.Error.Message
	}
	return ""
}

type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	accept      string
	// token overrides the token source for this call.
	token string
}

func jsonBody(v any) (io.Reader, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

// send performs the round trip and returns the body of a 2xx response.
func (c *Client) send(ctx context.Context, r request) ([]byte, http.Header, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build %s request: %w", r.op, err)
	}
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	accept := r.accept
	if accept == "" {
		accept = "application/json"
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("X-Request-Id", uuid.NewString())
	tok := r.token
	if tok == "" {
		tok = c.tokens.Token()
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "op", r.op, "method", r.method, "path", r.path, "error", err)
		return nil, nil, &Error{Kind: KindTransport, Op: r.op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		"op", r.op,
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, resp.Header, httpStatusError(r.op, resp.StatusCode, serverDetail(raw))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.Header, &Error{Kind: KindTransport, Op: r.op, StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}
	return data, resp.Header, nil
}

// do sends a JSON request and decodes the normalized payload into out.
func (c *Client) do(ctx context.Context, r request, out any) error {
	data, _, err := c.send(ctx, r)
	if err != nil {
		return err
	}
	payload, err := unwrap(r.op, data)
	if err != nil {
		return err
	}
	if out == nil || len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &Error{Kind: KindTransport, Op: r.op, Message: fmt.Sprintf("%s: %v", ErrDecode, err), Err: ErrDecode}
	}
	return nil
}

// unwrap accepts an enveloped body ({"success":bool,...}) or a raw JSON
// body, and returns the payload.
func unwrap(op string, data []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return trimmed, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Success == nil {
		return trimmed, nil
	}
	if !*env.Success {
		msg := env.message()
		if msg == "" {
			msg = op + " failed"
		}
		return nil, &Error{Kind: KindApplication, Op: op, StatusCode: http.StatusOK, Message: msg}
	}
	return env.Data, nil
}

func serverDetail(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if msg := env.message(); msg != "" {
			return msg
		}
	}
	return string(raw)
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.do(ctx, request{op: op, method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) sendJSON(ctx context.Context, op, method, path string, query url.Values, in, out any) error {
	body, err := jsonBody(in)
	if err != nil {
		return err
	}
	r := request{op: op, method: method, path: path, query: query, body: body}
	if body != nil {
		r.contentType = "application/json"
	}
	return c.do(ctx, r, out)
}

// Ping hits the keep-alive endpoint; no authentication is needed.
func (c *Client) Ping(ctx context.Context) error {
	_, _, err := c.send(ctx, request{op: "ping", method: http.MethodGet, path: "/api/ping", accept: "*/*"})
	return err
}

func (c *Client) Auth() *AuthAPI { return &AuthAPI{c: c} }
func (c *Client) Employees() *EmployeeAPI { return &EmployeeAPI{c: c} }
func (c *Client) HRs() *HRAPI { return &HRAPI{c: c} }
func (c *Client) Departments() *DepartmentAPI { return &DepartmentAPI{c: c} }
func (c *Client) JobRoles() *JobRoleAPI { return &JobRoleAPI{c: c} }
func (c *Client) Leaves() *LeaveAPI { return &LeaveAPI{c: c} }
func (c *Client) Attendance() *AttendanceAPI { return &AttendanceAPI{c: c} }
func (c *Client) Payroll() *PayrollAPI { return &PayrollAPI{c: c} }

func pathID(id string) string {
	return url.PathEscape(id)
}
