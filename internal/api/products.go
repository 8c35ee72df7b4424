package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"ofertare-gateway/internal/apiclient"
	"ofertare-gateway/internal/config"
	"ofertare-gateway/internal/domain/product"
	"ofertare-gateway/internal/hydra"
)

// Products builds requests against the backend's product catalog resource.
type Products struct {
	http   *apiclient.Client
	routes config.APIRoutes
}

func NewProducts(http *apiclient.Client, routes config.APIRoutes) *Products {
	return &Products{http: http, routes: routes}
}

// List fetches one page of the product catalog.
func (a *Products) List(ctx context.Context, p ListParams) (*hydra.Collection[product.Product], error) {
	resp, err := a.http.Do(ctx, http.MethodGet, a.routes.Products, nil, apiclient.WithQuery(p.values()))
	if err != nil {
		return nil, err
	}

	var col hydra.Collection[product.Product]
	if err := json.Unmarshal(resp.Body, &col); err != nil {
		return nil, fmt.Errorf("decode products collection: %w", err)
	}
	return &col, nil
}

// Create posts a new product as ld+json.
func (a *Products) Create(ctx context.Context, body []byte) (*product.Product, error) {
	resp, err := a.http.Do(ctx, http.MethodPost, a.routes.Products, body,
		apiclient.WithContentType(hydra.ContentTypeLD))
	if err != nil {
		return nil, err
	}

	var created product.Product
	if err := json.Unmarshal(resp.Body, &created); err != nil {
		return nil, fmt.Errorf("decode created product: %w", err)
	}
	return &created, nil
}

// Update patches an existing product with a merge-patch document.
func (a *Products) Update(ctx context.Context, id string, body []byte) (*product.Product, error) {
	resp, err := a.http.Do(ctx, http.MethodPatch, a.routes.Products+"/"+id, body,
		apiclient.WithContentType(hydra.ContentTypeMergePatch))
	if err != nil {
		return nil, err
	}

	var updated product.Product
	if err := json.Unmarshal(resp.Body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated product: %w", err)
	}
	return &updated, nil
}

// Delete removes a product by id.
func (a *Products) Delete(ctx context.Context, id string) error {
	_, err := a.http.Do(ctx, http.MethodDelete, a.routes.Products+"/"+id, nil)
	return err
}
