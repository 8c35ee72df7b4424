package guard

import (
	"net/url"
	"testing"

	"ofertare-gateway/internal/config"
	"ofertare-gateway/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRoutes = config.GatewayRoutes{
	Login:        "/login",
	Register:     "/register",
	Unauthorized: "/unauthorized",
	Landing:      "/",
}

func testGuard() *Guard {
	rules := NewRuleSet(
		PublicRoute{Path: "/login"},
		PublicRoute{Path: "/register"},
		PublicRoute{Path: "/unauthorized"},
		AuthenticatedRoute{Path: "/account/my-account"},
		AuthenticatedRoute{Path: "/clients", Roles: []string{config.RoleUser}},
		AuthenticatedRoute{Path: "/offers", Roles: []string{config.RoleUser}},
		AuthenticatedRoute{Path: "/offers/new-offer", Roles: []string{config.RoleUser}},
		AuthenticatedRoute{Path: "/products", Roles: []string{config.RoleUser}},
		AuthenticatedRoute{Path: "/products/new-product", Roles: []string{config.RoleAdmin}},
	)
	return New(rules, testRoutes)
}

func authedState(roles ...string) session.State {
	return session.State{
		Token:   &session.Token{AccessToken: "tok", RefreshToken: "ref"},
		Profile: &session.Profile{UserID: "u1", Roles: roles},
	}
}

func TestEvaluateUnruledPathIsAllowed(t *testing.T) {
	g := testGuard()

	for _, state := range []session.State{{}, authedState(config.RoleUser)} {
		d := g.Evaluate(state, false, "/health", nil)
		assert.Equal(t, Allow, d.Action)
	}
}

func TestEvaluateAuthOnlyRoute(t *testing.T) {
	g := testGuard()

	d := g.Evaluate(session.State{}, false, "/account/my-account", nil)
	assert.Equal(t, RedirectLogin, d.Action)

	d = g.Evaluate(authedState(), false, "/account/my-account", nil)
	assert.Equal(t, Allow, d.Action)

	// A token without a profile is enough when no roles are required.
	d = g.Evaluate(session.State{Token: &session.Token{AccessToken: "tok"}}, false, "/account/my-account", nil)
	assert.Equal(t, Allow, d.Action)
}

func TestEvaluateRoleRoute(t *testing.T) {
	g := testGuard()

	d := g.Evaluate(authedState(config.RoleUser), false, "/clients", nil)
	assert.Equal(t, Allow, d.Action)

	// Token present but profile missing: roles cannot intersect.
	d = g.Evaluate(session.State{Token: &session.Token{AccessToken: "tok"}}, false, "/clients", nil)
	assert.Equal(t, RedirectUnauthorized, d.Action)
	assert.False(t, d.ClearSession, "authorization denial must not clear the session")
}

func TestEvaluateNoSessionRedirectsToLoginWithReturnTarget(t *testing.T) {
	g := testGuard()

	d := g.Evaluate(session.State{}, false, "/offers/new-offer", nil)
	require.Equal(t, RedirectLogin, d.Action)

	u, err := url.Parse(d.Target)
	require.NoError(t, err)
	assert.Equal(t, "/login", u.Path)
	assert.Equal(t, "/offers/new-offer", u.Query().Get(RedirectToParam))
}

func TestEvaluateInsufficientRoleRedirectsToUnauthorized(t *testing.T) {
	g := testGuard()

	d := g.Evaluate(authedState(config.RoleUser), false, "/products/new-product", nil)
	assert.Equal(t, RedirectUnauthorized, d.Action)
	assert.Equal(t, "/unauthorized", d.Target)
	assert.False(t, d.ClearSession)
}

func TestEvaluateLoginPageWithSessionForwardsToTarget(t *testing.T) {
	g := testGuard()

	query := url.Values{}
	query.Set(RedirectToParam, "/clients")

	d := g.Evaluate(authedState(config.RoleUser), false, "/login", query)
	require.Equal(t, Redirect, d.Action)
	assert.Equal(t, "/clients", d.Target, "redirectTo parameter must be honored and stripped")
}

func TestEvaluateLoginPageRejectsOffSiteTarget(t *testing.T) {
	g := testGuard()

	for _, target := range []string{
		"https://evil.example.com/phish",
		"//evil.example.com",
		"javascript:alert(1)",
	} {
		query := url.Values{}
		query.Set(RedirectToParam, target)

		d := g.Evaluate(authedState(config.RoleUser), false, "/login", query)
		require.Equal(t, Redirect, d.Action, target)
		assert.Equal(t, "/", d.Target, "non-local targets must fall back to the landing page")
	}
}

func TestEvaluateLoginPageWithSessionDefaultsToLanding(t *testing.T) {
	g := testGuard()

	for _, path := range []string{"/login", "/register"} {
		d := g.Evaluate(authedState(config.RoleUser), false, path, url.Values{})
		require.Equal(t, Redirect, d.Action, path)
		assert.Equal(t, "/", d.Target, path)
	}
}

func TestEvaluateCorruptedSessionClearsAndRedirects(t *testing.T) {
	g := testGuard()

	d := g.Evaluate(session.State{}, true, "/clients", nil)
	require.Equal(t, RedirectLogin, d.Action)
	assert.True(t, d.ClearSession)

	// Corruption on an unruled path changes nothing.
	d = g.Evaluate(session.State{}, true, "/health", nil)
	assert.Equal(t, Allow, d.Action)
	assert.False(t, d.ClearSession)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	g := testGuard()
	state := authedState(config.RoleUser)

	first := g.Evaluate(state, false, "/products/new-product", nil)
	second := g.Evaluate(state, false, "/products/new-product", nil)
	assert.Equal(t, first, second)
}
