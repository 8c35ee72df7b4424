package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleSetMatch(t *testing.T) {
	rules := NewRuleSet(
		PublicRoute{Path: "/login"},
		PublicRoute{Path: "/auth/login"},
		AuthenticatedRoute{Path: "/"},
		AuthenticatedRoute{Path: "/auth"},
		AuthenticatedRoute{Path: "/offers", Roles: []string{"ROLE_USER"}},
		AuthenticatedRoute{Path: "/offers/new-offer", Roles: []string{"ROLE_ADMIN"}},
	)

	t.Run("exact match", func(t *testing.T) {
		r, ok := rules.Match("/login")
		require.True(t, ok)
		assert.Equal(t, "/login", r.RulePath())
	})

	t.Run("prefix match", func(t *testing.T) {
		r, ok := rules.Match("/offers/42")
		require.True(t, ok)
		assert.Equal(t, "/offers", r.RulePath())
	})

	t.Run("exact beats prefix", func(t *testing.T) {
		r, ok := rules.Match("/auth/login")
		require.True(t, ok)
		_, isPublic := r.(PublicRoute)
		assert.True(t, isPublic)
	})

	t.Run("longest prefix wins", func(t *testing.T) {
		r, ok := rules.Match("/offers/new-offer/step-2")
		require.True(t, ok)
		assert.Equal(t, "/offers/new-offer", r.RulePath())
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := rules.Match("/health")
		assert.False(t, ok)
	})

	t.Run("root is exact only", func(t *testing.T) {
		r, ok := rules.Match("/")
		require.True(t, ok)
		assert.Equal(t, "/", r.RulePath())

		_, ok = rules.Match("/anything-else")
		assert.False(t, ok)
	})

	t.Run("sibling path with shared prefix does not match", func(t *testing.T) {
		_, ok := rules.Match("/offersarchive")
		assert.False(t, ok)
	})
}
