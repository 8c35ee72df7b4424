package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"ofertare-gateway/internal/pkg/xerrors"
	"ofertare-gateway/internal/session"

	"go.uber.org/zap"
)

// TokenSource supplies the bearer credential for outgoing requests and
// persists replacements obtained through refresh. Implementations are
// per-request: the gateway's source reads and writes the session store
// against the current request/response pair.
type TokenSource interface {
	// Token returns the current credential bundle, or xerrors.ErrNoToken
	// when no session exists.
	Token(ctx context.Context) (session.Token, error)
	// SetToken replaces the stored credential bundle after a refresh.
	SetToken(ctx context.Context, tok session.Token) error
	// Invalidate wipes the session after an unrecoverable auth failure.
	Invalidate(ctx context.Context) error
}

// Response is a completed 2xx backend response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Client performs outbound calls against the backend API with automatic
// bearer attachment and one-shot recovery from credential expiry: a 401
// triggers exactly one refresh and one retry, never more.
type Client struct {
	base      *url.URL
	client    *http.Client
	tokens    TokenSource
	refresher *Refresher
	logger    *zap.Logger
}

func New(base *url.URL, tokens TokenSource, refresher *Refresher, logger *zap.Logger) *Client {
	return &Client{
		base:      base,
		client:    http.DefaultClient,
		tokens:    tokens,
		refresher: refresher,
		logger:    logger,
	}
}

// WithHTTPClient replaces the underlying http.Client, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.client = hc
	return c
}

// RequestOption customizes a single outgoing request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	contentType string
	accept      string
	query       url.Values
	headers     http.Header
}

// WithContentType sets the request Content-Type header.
func WithContentType(ct string) RequestOption {
	return func(o *requestOptions) { o.contentType = ct }
}

// WithAccept sets the request Accept header.
func WithAccept(accept string) RequestOption {
	return func(o *requestOptions) { o.accept = accept }
}

// WithQuery attaches query parameters to the request URL.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) { o.query = q }
}

// WithHeader adds an arbitrary request header.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = http.Header{}
		}
		o.headers.Set(key, value)
	}
}

// Do issues an authenticated request. body may be nil. On 401 it performs a
// single refresh-and-retry cycle; if the refresh fails the session is
// invalidated and xerrors.ErrSessionExpired is returned so the caller can
// redirect to login. Any other non-2xx response comes back as *APIError.
func (c *Client) Do(ctx context.Context, method, path string, body []byte, opts ...RequestOption) (*Response, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, xerrors.ErrNoToken
	}

	resp, err := c.send(ctx, method, path, body, tok.AccessToken, o)
	if err != nil {
		return nil, err
	}

	if resp.Status == http.StatusUnauthorized {
		fresh, refreshErr := c.refresher.Refresh(ctx, tok.RefreshToken)
		if refreshErr != nil {
			c.logger.Info("token refresh failed, session invalidated",
				zap.String("path", path),
				zap.Error(refreshErr),
			)
			if invErr := c.tokens.Invalidate(ctx); invErr != nil {
				c.logger.Error("session invalidation failed", zap.Error(invErr))
			}
			return nil, fmt.Errorf("%w: %v", xerrors.ErrSessionExpired, refreshErr)
		}
		if err := c.tokens.SetToken(ctx, fresh); err != nil {
			return nil, fmt.Errorf("persist refreshed token: %w", err)
		}

		resp, err = c.send(ctx, method, path, body, fresh.AccessToken, o)
		if err != nil {
			return nil, err
		}
		if resp.Status == http.StatusUnauthorized {
			// Refreshed credential still rejected. No second cycle.
			if invErr := c.tokens.Invalidate(ctx); invErr != nil {
				c.logger.Error("session invalidation failed", zap.Error(invErr))
			}
			return nil, xerrors.ErrSessionExpired
		}
	}

	if resp.Status < 200 || resp.Status > 299 {
		return nil, &APIError{
			Status:      resp.Status,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        resp.Body,
		}
	}

	return resp, nil
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, bearer string, o requestOptions) (*Response, error) {
	u := c.base.JoinPath(path)
	if len(o.query) > 0 {
		u.RawQuery = o.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+bearer)
	if o.contentType != "" {
		req.Header.Set("Content-Type", o.contentType)
	}
	if o.accept != "" {
		req.Header.Set("Accept", o.accept)
	}
	for k, vs := range o.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	httpResp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   respBody,
	}, nil
}
