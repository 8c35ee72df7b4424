package session

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replay copies the cookies set on a response onto a fresh request, the way
// a browser would on the next navigation.
func replay(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	return req
}

func TestCookieStoreRoundTrip(t *testing.T) {
	store := NewCookieStore(86400, "", false)

	tok := Token{AccessToken: "abc", RefreshToken: "def"}
	profile := Profile{UserID: "u1", Roles: []string{"ROLE_USER"}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	require.NoError(t, store.Write(w, req, State{Token: &tok, Profile: &profile}))

	state, err := store.Read(replay(t, w))
	require.NoError(t, err)
	require.NotNil(t, state.Token)
	require.NotNil(t, state.Profile)
	assert.Equal(t, tok, *state.Token)
	assert.Equal(t, profile, *state.Profile)
	assert.True(t, state.FullyAuthenticated())
}

func TestCookieStoreReadAbsent(t *testing.T) {
	store := NewCookieStore(86400, "", false)

	state, err := store.Read(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Nil(t, state.Token)
	assert.Nil(t, state.Profile)
	assert.False(t, state.Authenticated())
}

func TestCookieStoreTokenWithoutProfile(t *testing.T) {
	store := NewCookieStore(86400, "", false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, store.Write(w, req, State{Token: &Token{AccessToken: "abc"}}))

	state, err := store.Read(replay(t, w))
	require.NoError(t, err)
	require.NotNil(t, state.Token)
	assert.Nil(t, state.Profile)
	assert.True(t, state.Authenticated())
	assert.False(t, state.FullyAuthenticated())
}

func TestCookieStoreCorruptedProfile(t *testing.T) {
	store := NewCookieStore(86400, "", false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieProfile, Value: url.QueryEscape("{broken")})

	_, err := store.Read(req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestCookieStoreCorruptedToken(t *testing.T) {
	store := NewCookieStore(86400, "", false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieToken, Value: "not%json%"})

	_, err := store.Read(req)
	assert.ErrorIs(t, err, ErrCorrupted)
}

func TestCookieStoreClear(t *testing.T) {
	store := NewCookieStore(86400, "", false)

	w := httptest.NewRecorder()
	require.NoError(t, store.Clear(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil)))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Less(t, c.MaxAge, 0)
	}

	state, err := store.Read(replay(t, w))
	require.NoError(t, err)
	assert.Nil(t, state.Token)
	assert.Nil(t, state.Profile)
}

func TestCookieStoreMaxAge(t *testing.T) {
	store := NewCookieStore(86400, "", false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, store.Write(w, req, State{
		Token:   &Token{AccessToken: "abc"},
		Profile: &Profile{UserID: "u1", Roles: []string{"ROLE_USER"}},
	}))

	for _, c := range w.Result().Cookies() {
		assert.Equal(t, 86400, c.MaxAge)
	}
}
