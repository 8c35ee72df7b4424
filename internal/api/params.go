// Package api holds thin request builders for the backend's resource
// endpoints, layered on the authenticated request client.
package api

import (
	"net/url"
	"strconv"
)

// ListParams are the pagination and filter parameters shared by the
// collection endpoints.
type ListParams struct {
	Page         int
	ItemsPerPage int
	Search       string
	SortBy       string
}

func (p ListParams) values() url.Values {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.ItemsPerPage < 1 {
		p.ItemsPerPage = 10
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("itemsPerPage", strconv.Itoa(p.ItemsPerPage))
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.SortBy != "" {
		q.Set("sort_by", p.SortBy)
	}
	return q
}
