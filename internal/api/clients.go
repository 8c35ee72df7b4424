package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"ofertare-gateway/internal/apiclient"
	"ofertare-gateway/internal/config"
	"ofertare-gateway/internal/domain/client"
	"ofertare-gateway/internal/hydra"
)

// Clients builds requests against the backend's client resource. Listing is
// scoped to the logged-in user's own clients.
type Clients struct {
	http   *apiclient.Client
	routes config.APIRoutes
}

func NewClients(http *apiclient.Client, routes config.APIRoutes) *Clients {
	return &Clients{http: http, routes: routes}
}

// List fetches one page of the user's clients.
func (a *Clients) List(ctx context.Context, userID string, p ListParams) (*hydra.Collection[client.Client], error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required to list clients")
	}

	path := fmt.Sprintf("/api/users/%s/clients", userID)
	resp, err := a.http.Do(ctx, http.MethodGet, path, nil, apiclient.WithQuery(p.values()))
	if err != nil {
		return nil, err
	}

	var col hydra.Collection[client.Client]
	if err := json.Unmarshal(resp.Body, &col); err != nil {
		return nil, fmt.Errorf("decode clients collection: %w", err)
	}
	return &col, nil
}

// Create posts a new client as ld+json. The body is the browser payload,
// forwarded as-is.
func (a *Clients) Create(ctx context.Context, body []byte) (*client.Client, error) {
	resp, err := a.http.Do(ctx, http.MethodPost, a.routes.Clients, body,
		apiclient.WithContentType(hydra.ContentTypeLD))
	if err != nil {
		return nil, err
	}

	var created client.Client
	if err := json.Unmarshal(resp.Body, &created); err != nil {
		return nil, fmt.Errorf("decode created client: %w", err)
	}
	return &created, nil
}

// Update patches an existing client with a merge-patch document.
func (a *Clients) Update(ctx context.Context, id string, body []byte) (*client.Client, error) {
	resp, err := a.http.Do(ctx, http.MethodPatch, a.routes.Clients+"/"+id, body,
		apiclient.WithContentType(hydra.ContentTypeMergePatch))
	if err != nil {
		return nil, err
	}

	var updated client.Client
	if err := json.Unmarshal(resp.Body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated client: %w", err)
	}
	return &updated, nil
}

// Delete removes a client by id.
func (a *Clients) Delete(ctx context.Context, id string) error {
	_, err := a.http.Do(ctx, http.MethodDelete, a.routes.Clients+"/"+id, nil)
	return err
}
