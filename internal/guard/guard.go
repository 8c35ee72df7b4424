package guard

import (
	"net/url"
	"strings"

	"ofertare-gateway/internal/config"
	"ofertare-gateway/internal/session"
)

// RedirectToParam carries the originally requested path through the login
// redirect so the user lands back where they started.
const RedirectToParam = "redirectTo"

// Action is the outcome of evaluating a navigation against the rule set.
type Action int

const (
	Allow Action = iota
	RedirectLogin
	RedirectUnauthorized
	// Redirect sends an already-authenticated user away from the login or
	// registration page, honoring a pending redirectTo target.
	Redirect
)

// Decision is the guard's verdict for one navigation. It is pure data: the
// only permitted side effects are the redirect itself and, when ClearSession
// is set, wiping the corrupted session.
type Decision struct {
	Action       Action
	Target       string
	ClearSession bool
}

// Guard evaluates navigations against a static rule set. Evaluation is a pure
// function of (session state, path, query): calling it twice with unchanged
// inputs yields the same decision.
type Guard struct {
	rules  RuleSet
	routes config.GatewayRoutes
}

func New(rules RuleSet, routes config.GatewayRoutes) *Guard {
	return &Guard{rules: rules, routes: routes}
}

// Evaluate runs the decision table for one navigation. corrupt reports that
// the session store held unparseable state for this request.
func (g *Guard) Evaluate(state session.State, corrupt bool, path string, query url.Values) Decision {
	// An authenticated user has no business on the login or registration
	// page; forward them to the pending target or the landing page.
	if (path == g.routes.Login || path == g.routes.Register) && state.Authenticated() {
		target := localTarget(query.Get(RedirectToParam))
		if target == "" {
			target = g.routes.Landing
		}
		return Decision{Action: Redirect, Target: target}
	}

	rule, ok := g.rules.Match(path)
	if !ok {
		return Decision{Action: Allow}
	}

	switch r := rule.(type) {
	case PublicRoute:
		return Decision{Action: Allow}

	case AuthenticatedRoute:
		if corrupt {
			return Decision{
				Action:       RedirectLogin,
				Target:       g.loginTarget(path),
				ClearSession: true,
			}
		}
		if !state.Authenticated() {
			return Decision{Action: RedirectLogin, Target: g.loginTarget(path)}
		}
		if len(r.Roles) == 0 {
			return Decision{Action: Allow}
		}
		if state.Profile.HasAnyRole(r.Roles...) {
			return Decision{Action: Allow}
		}
		// Valid session, wrong role. The session stays intact.
		return Decision{Action: RedirectUnauthorized, Target: g.routes.Unauthorized}
	}

	return Decision{Action: Allow}
}

// localTarget accepts only same-host path targets. Absolute URLs and
// scheme-relative "//host" forms come from the query string, which anyone
// can craft; handing one back as a redirect would send the user off-site.
func localTarget(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return ""
	}
	return target
}

func (g *Guard) loginTarget(path string) string {
	q := url.Values{}
	q.Set(RedirectToParam, path)
	return g.routes.Login + "?" + q.Encode()
}
