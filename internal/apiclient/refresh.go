package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"ofertare-gateway/internal/session"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Refresher exchanges a refresh credential for a fresh token pair. It is
// shared across requests and deduplicates concurrent refreshes per refresh
// credential: parallel 401s from in-flight requests of the same session
// produce a single round trip to the backend.
type Refresher struct {
	base   *url.URL
	path   string
	client *http.Client
	logger *zap.Logger
	group  singleflight.Group
}

func NewRefresher(base *url.URL, path string, client *http.Client, logger *zap.Logger) *Refresher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Refresher{
		base:   base,
		path:   path,
		client: client,
		logger: logger,
	}
}

// Refresh obtains a new token pair for the given refresh credential.
func (r *Refresher) Refresh(ctx context.Context, refreshToken string) (session.Token, error) {
	if refreshToken == "" {
		return session.Token{}, fmt.Errorf("no refresh credential available")
	}

	v, err, _ := r.group.Do(refreshToken, func() (interface{}, error) {
		// The flight is shared with every waiter on this credential, so it
		// must not die with the first caller's context.
		return r.refresh(context.WithoutCancel(ctx), refreshToken)
	})
	if err != nil {
		return session.Token{}, err
	}
	return v.(session.Token), nil
}

func (r *Refresher) refresh(ctx context.Context, refreshToken string) (session.Token, error) {
	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return session.Token{}, fmt.Errorf("marshal refresh request: %w", err)
	}

	endpoint := r.base.JoinPath(r.path).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return session.Token{}, fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return session.Token{}, fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return session.Token{}, fmt.Errorf("read refresh response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.logger.Warn("token refresh rejected", zap.Int("status", resp.StatusCode))
		return session.Token{}, fmt.Errorf("refresh endpoint returned status %d", resp.StatusCode)
	}

	var tok session.Token
	if err := json.Unmarshal(body, &tok); err != nil {
		return session.Token{}, fmt.Errorf("decode refresh response: %w", err)
	}
	if tok.AccessToken == "" {
		return session.Token{}, fmt.Errorf("refresh response missing token")
	}
	// Some backends rotate the refresh credential, some do not. Keep the
	// old one when the response omits it.
	if tok.RefreshToken == "" {
		tok.RefreshToken = refreshToken
	}

	r.logger.Debug("access token refreshed")
	return tok, nil
}
