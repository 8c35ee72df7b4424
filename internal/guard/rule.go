package guard

import "strings"

// Rule is a route protection rule. The two variants make the "no roles means
// any authenticated user" case explicit instead of hiding it in an optional
// field.
type Rule interface {
	// RulePath is the exact path or prefix the rule covers. A rule for
	// "/offers" also covers "/offers/...". The root path "/" only matches
	// itself, it is never treated as a catch-all prefix.
	RulePath() string
	rule()
}

// PublicRoute marks a path reachable without any session.
type PublicRoute struct {
	Path string
}

func (p PublicRoute) RulePath() string { return p.Path }
func (PublicRoute) rule()              {}

// AuthenticatedRoute requires a session. An empty Roles set admits any
// authenticated user; a non-empty set requires at least one matching role.
type AuthenticatedRoute struct {
	Path  string
	Roles []string
}

func (a AuthenticatedRoute) RulePath() string { return a.Path }
func (AuthenticatedRoute) rule()              {}

// RuleSet is a static collection of route protection rules.
type RuleSet struct {
	rules []Rule
}

func NewRuleSet(rules ...Rule) RuleSet {
	return RuleSet{rules: rules}
}

// Match returns the rule governing the given path, if any. An exact match
// always wins over a prefix match; among competing prefix matches the longest
// prefix wins.
func (s RuleSet) Match(path string) (Rule, bool) {
	var (
		best    Rule
		bestLen = -1
	)

	for _, r := range s.rules {
		p := r.RulePath()
		if path == p {
			return r, true
		}
		if p != "/" && strings.HasPrefix(path, p+"/") && len(p) > bestLen {
			best = r
			bestLen = len(p)
		}
	}

	if best == nil {
		return nil, false
	}
	return best, true
}
