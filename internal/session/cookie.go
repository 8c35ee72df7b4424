package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Cookie names are part of the browser contract; existing sessions must
// survive a gateway rollout.
const (
	CookieToken   = "bitUser"
	CookieProfile = "bitUserData"
)

// CookieStore keeps the session entirely client-side: two URL-encoded JSON
// cookies, one for the credential bundle and one for the identity record.
type CookieStore struct {
	maxAge int // seconds
	domain string
	secure bool
}

func NewCookieStore(maxAge int, domain string, secure bool) *CookieStore {
	return &CookieStore{
		maxAge: maxAge,
		domain: domain,
		secure: secure,
	}
}

func (s *CookieStore) Read(r *http.Request) (State, error) {
	var state State

	if raw, ok := cookieValue(r, CookieToken); ok {
		var tok Token
		if err := decodeCookieJSON(raw, &tok); err != nil {
			return State{}, fmt.Errorf("token cookie: %w", ErrCorrupted)
		}
		state.Token = &tok
	}

	if raw, ok := cookieValue(r, CookieProfile); ok {
		var profile Profile
		if err := decodeCookieJSON(raw, &profile); err != nil {
			return State{}, fmt.Errorf("profile cookie: %w", ErrCorrupted)
		}
		state.Profile = &profile
	}

	return state, nil
}

func (s *CookieStore) Write(w http.ResponseWriter, r *http.Request, state State) error {
	if state.Token != nil {
		raw, err := encodeCookieJSON(state.Token)
		if err != nil {
			return fmt.Errorf("encode token cookie: %w", err)
		}
		http.SetCookie(w, s.cookie(CookieToken, raw, s.maxAge))
	} else {
		http.SetCookie(w, s.cookie(CookieToken, "", -1))
	}

	if state.Profile != nil {
		raw, err := encodeCookieJSON(state.Profile)
		if err != nil {
			return fmt.Errorf("encode profile cookie: %w", err)
		}
		http.SetCookie(w, s.cookie(CookieProfile, raw, s.maxAge))
	} else {
		http.SetCookie(w, s.cookie(CookieProfile, "", -1))
	}

	return nil
}

func (s *CookieStore) Clear(w http.ResponseWriter, _ *http.Request) error {
	http.SetCookie(w, s.cookie(CookieToken, "", -1))
	http.SetCookie(w, s.cookie(CookieProfile, "", -1))
	return nil
}

func (s *CookieStore) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   s.domain,
		MaxAge:   maxAge,
		Secure:   s.secure,
		HttpOnly: false, // browser-side code reads these cookies directly
		SameSite: http.SameSiteLaxMode,
	}
}

func cookieValue(r *http.Request, name string) (string, bool) {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

func decodeCookieJSON(raw string, v interface{}) error {
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(decoded), v)
}

func encodeCookieJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return url.QueryEscape(string(data)), nil
}
