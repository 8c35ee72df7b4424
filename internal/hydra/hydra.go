// Package hydra decodes the backend's Hydra/JSON-LD response envelopes.
package hydra

import (
	"encoding/json"
	"strings"
)

// Content types used by the Hydra API.
const (
	ContentTypeLD         = "application/ld+json"
	ContentTypeMergePatch = "application/merge-patch+json"
)

// IRI is a resource identifier like "/api/offers/42".
type IRI string

// ID returns the trailing path segment of the IRI.
func (i IRI) ID() string {
	s := strings.TrimSuffix(string(i), "/")
	if idx := strings.LastIndex(s, "/"); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// Collection is a paginated Hydra collection: a member array plus a total
// count. Depending on the backend's serialization context the keys arrive
// either prefixed ("hydra:member") or bare ("member"); both are accepted.
type Collection[T any] struct {
	Member     []T
	TotalItems int
}

func (c *Collection[T]) UnmarshalJSON(data []byte) error {
	var raw struct {
		Member          []T `json:"member"`
		HydraMember     []T `json:"hydra:member"`
		TotalItems      int `json:"totalItems"`
		HydraTotalItems int `json:"hydra:totalItems"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Member = raw.Member
	if c.Member == nil {
		c.Member = raw.HydraMember
	}
	c.TotalItems = raw.TotalItems
	if c.TotalItems == 0 {
		c.TotalItems = raw.HydraTotalItems
	}
	return nil
}
