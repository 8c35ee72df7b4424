package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"ofertare-gateway/internal/apiclient"
	"ofertare-gateway/internal/config"
	"ofertare-gateway/internal/domain/offer"
	"ofertare-gateway/internal/hydra"
)

// Offers builds requests against the backend's offer resource, including the
// server-side PDF export.
type Offers struct {
	http   *apiclient.Client
	routes config.APIRoutes
}

func NewOffers(http *apiclient.Client, routes config.APIRoutes) *Offers {
	return &Offers{http: http, routes: routes}
}

// List fetches one page of offers. SortBy is passed through when set.
func (a *Offers) List(ctx context.Context, p ListParams) (*hydra.Collection[offer.Offer], error) {
	resp, err := a.http.Do(ctx, http.MethodGet, a.routes.Offers, nil, apiclient.WithQuery(p.values()))
	if err != nil {
		return nil, err
	}

	var col hydra.Collection[offer.Offer]
	if err := json.Unmarshal(resp.Body, &col); err != nil {
		return nil, fmt.Errorf("decode offers collection: %w", err)
	}
	return &col, nil
}

// Get fetches one offer by id.
func (a *Offers) Get(ctx context.Context, id string) (*offer.Offer, error) {
	resp, err := a.http.Do(ctx, http.MethodGet, a.routes.Offers+"/"+id, nil)
	if err != nil {
		return nil, err
	}

	var o offer.Offer
	if err := json.Unmarshal(resp.Body, &o); err != nil {
		return nil, fmt.Errorf("decode offer: %w", err)
	}
	return &o, nil
}

// Create posts a new offer as ld+json.
func (a *Offers) Create(ctx context.Context, req offer.CreateRequest) (*offer.Offer, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal offer: %w", err)
	}

	resp, err := a.http.Do(ctx, http.MethodPost, a.routes.Offers, body,
		apiclient.WithContentType(hydra.ContentTypeLD))
	if err != nil {
		return nil, err
	}

	var created offer.Offer
	if err := json.Unmarshal(resp.Body, &created); err != nil {
		return nil, fmt.Errorf("decode created offer: %w", err)
	}
	return &created, nil
}

// Update patches an existing offer with a merge-patch document.
func (a *Offers) Update(ctx context.Context, id string, body []byte) (*offer.Offer, error) {
	resp, err := a.http.Do(ctx, http.MethodPatch, a.routes.Offers+"/"+id, body,
		apiclient.WithContentType(hydra.ContentTypeMergePatch))
	if err != nil {
		return nil, err
	}

	var updated offer.Offer
	if err := json.Unmarshal(resp.Body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated offer: %w", err)
	}
	return &updated, nil
}

// Delete removes an offer by id.
func (a *Offers) Delete(ctx context.Context, id string) error {
	_, err := a.http.Do(ctx, http.MethodDelete, a.routes.Offers+"/"+id, nil)
	return err
}

// Export asks the backend to render the offer as a PDF and returns the raw
// document bytes.
func (a *Offers) Export(ctx context.Context, id string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{
		"offer": a.routes.Offers + "/" + id,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal export request: %w", err)
	}

	resp, err := a.http.Do(ctx, http.MethodPost, a.routes.Offers+"/export", payload,
		apiclient.WithContentType(hydra.ContentTypeLD),
		apiclient.WithAccept("application/pdf"))
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
