package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"ofertare-gateway/internal/config"
	"ofertare-gateway/internal/pkg/xerrors"
	"ofertare-gateway/internal/session"

	"go.uber.org/zap"
)

// AuthService drives the login/logout lifecycle: it exchanges credentials
// with the backend, fetches the identity record, and owns what ends up in the
// session store.
type AuthService struct {
	base   *url.URL
	routes config.APIRoutes
	store  session.Store
	client *http.Client
	logger *zap.Logger
}

func NewAuthService(base *url.URL, routes config.APIRoutes, store session.Store, logger *zap.Logger) *AuthService {
	return &AuthService{
		base:   base,
		routes: routes,
		store:  store,
		client: http.DefaultClient,
		logger: logger,
	}
}

// WithHTTPClient replaces the underlying http.Client, mainly for tests.
func (s *AuthService) WithHTTPClient(hc *http.Client) *AuthService {
	s.client = hc
	return s
}

// Login exchanges the credentials for a token pair, fetches the identity
// record and persists both in one session write. The profile's role set must
// be non-empty for a successfully authenticated user.
func (s *AuthService) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, email, password string) (session.State, error) {
	tok, err := s.exchangeCredentials(ctx, email, password)
	if err != nil {
		return session.State{}, err
	}

	profile, err := s.fetchProfile(ctx, tok.AccessToken)
	if err != nil {
		return session.State{}, err
	}
	if len(profile.Roles) == 0 {
		return session.State{}, fmt.Errorf("identity endpoint returned empty role set for user %q", profile.UserID)
	}

	state := session.State{Token: &tok, Profile: &profile}
	if err := s.store.Write(w, r, state); err != nil {
		return session.State{}, fmt.Errorf("persist session: %w", err)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", profile.UserID),
		zap.Strings("roles", profile.Roles),
	)
	return state, nil
}

// Logout removes the session.
func (s *AuthService) Logout(_ context.Context, w http.ResponseWriter, r *http.Request) error {
	if err := s.store.Clear(w, r); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Info("user logged out")
	return nil
}

func (s *AuthService) exchangeCredentials(ctx context.Context, email, password string) (session.Token, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return session.Token{}, fmt.Errorf("marshal login request: %w", err)
	}

	endpoint := s.base.JoinPath(s.routes.Login).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return session.Token{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return session.Token{}, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return session.Token{}, fmt.Errorf("read login response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return session.Token{}, xerrors.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return session.Token{}, fmt.Errorf("login endpoint returned status %d", resp.StatusCode)
	}

	var tok session.Token
	if err := json.Unmarshal(body, &tok); err != nil {
		return session.Token{}, fmt.Errorf("decode login response: %w", err)
	}
	if tok.AccessToken == "" {
		return session.Token{}, fmt.Errorf("login response missing token")
	}
	return tok, nil
}

func (s *AuthService) fetchProfile(ctx context.Context, bearer string) (session.Profile, error) {
	endpoint := s.base.JoinPath(s.routes.Identity).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return session.Profile{}, fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := s.client.Do(req)
	if err != nil {
		return session.Profile{}, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return session.Profile{}, fmt.Errorf("read identity response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return session.Profile{}, fmt.Errorf("identity endpoint returned status %d", resp.StatusCode)
	}

	var profile session.Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return session.Profile{}, fmt.Errorf("decode identity response: %w", err)
	}
	return profile, nil
}
