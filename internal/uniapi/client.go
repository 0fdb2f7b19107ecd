package uniapi

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

	apperrors "github.com/uniportal/uni-ui-api/internal/errors"
)

const defaultTimeout = 30 * time.Second

// Config carries the client's dependencies.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.university.edu/api/".
	BaseURL string
	// Source supplies tokens for authenticated calls. Nil yields an
	// unauthenticated client good only for login and password reset.
	Source TokenSource
	// Timeout bounds each request. Zero means 30s.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Client talks to the university API. Authenticated calls go through an
// AuthTransport; login, refresh and password reset bypass it so a refresh
// never recurses into itself.
type Client struct {
	baseURL string
	httpc   *http.Client
	plain   *http.Client
	logger  *slog.Logger
}

// New builds a Client. The client itself serves as the transport's Refresher.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, apperrors.Validation("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "parse base URL")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/") + "/",
		plain:   &http.Client{Timeout: timeout},
		logger:  logger,
	}
	if cfg.Source != nil {
		c.httpc = &http.Client{
			Timeout: timeout,
			Transport: &AuthTransport{
				Source:    cfg.Source,
				Refresher: c,
				Logger:    logger,
			},
		}
	} else {
		c.httpc = c.plain
	}
	return c, nil
}

// Refresh implements Refresher against Home/refresh using the plain client.
func (c *Client) Refresh(ctx context.Context, access, refresh string) (TokenPair, error) {
	var pair TokenPair
	req, err := c.newRequest(ctx, http.MethodPost, pathRefresh, TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	})
	if err != nil {
		return pair, err
	}
	if err := c.do(c.plain, req, &pair); err != nil {
		return pair, err
	}
	return pair, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do executes the request and decodes the response into out when non-nil.
func (c *Client) do(hc *http.Client, req *http.Request, out any) error {
	resp, err := hc.Do(req)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "%s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.apiError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeInternal, "decode %s response", req.URL.Path)
	}
	return nil
}

// apiError maps an error response to the app error taxonomy, preferring the
// server's {"message": ...} text when present.
func (c *Client) apiError(resp *http.Response) error {
	msg := readMessage(resp.Body)
	if msg == "" {
		msg = fmt.Sprintf("api returned %s", resp.Status)
	}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apperrors.Unauthorized(msg)
	case http.StatusForbidden:
		return apperrors.Forbidden(msg)
	case http.StatusNotFound:
		return apperrors.NotFound(msg)
	case http.StatusConflict:
		return apperrors.Conflict(msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.Validation(msg)
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return apperrors.Unavailable(msg)
	default:
		return apperrors.Internal(msg)
	}
}

func readMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	// Some endpoints answer with a bare string.
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return ""
}

// get issues an authenticated GET and decodes into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(c.httpc, req, out)
}

// post issues an authenticated POST with a JSON body.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.do(c.httpc, req, out)
}

// put issues an authenticated PUT with a JSON body.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	req, err := c.newRequest(ctx, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	return c.do(c.httpc, req, out)
}

// del issues an authenticated DELETE, with an optional JSON body for the
// endpoints that take one.
func (c *Client) del(ctx context.Context, path string, body any) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, body)
	if err != nil {
		return err
	}
	return c.do(c.httpc, req, nil)
}
