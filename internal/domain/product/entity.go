package product

import (
	"encoding/json"

	"ofertare-gateway/internal/hydra"
)

type Product struct {
	IRI         hydra.IRI   `json:"@id,omitempty"`
	ID          string      `json:"id,omitempty"`
	SKU         string      `json:"sku,omitempty"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description,omitempty"`
	Price       json.Number `json:"price,omitempty"`
	Unit        string      `json:"unit,omitempty"`
	Status      string      `json:"status,omitempty"`
}
