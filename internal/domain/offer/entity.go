package offer

import (
	"encoding/json"

	"ofertare-gateway/internal/hydra"
)

type Status string

// Offer lifecycle statuses as the backend spells them, including the
// backend's "accepter_by_client" typo which the API contract is stuck with.
const (
	StatusDraft            Status = "draft"
	StatusGenerated        Status = "generated"
	StatusSentToClient     Status = "sent_to_client"
	StatusAcceptedByClient Status = "accepter_by_client"
	StatusRejectedByClient Status = "rejected_by_client"
)

// OfferClient is the client sub-record embedded in an offer response.
type OfferClient struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type Offer struct {
	IRI      hydra.IRI         `json:"@id,omitempty"`
	Status   Status            `json:"status"`
	Client   *OfferClient      `json:"client,omitempty"`
	Products []json.RawMessage `json:"products"`
	// ValidUntill keeps the backend's field spelling.
	ValidUntill string `json:"validUntill,omitempty"`
}

// ID extracts the numeric identifier from the offer's IRI.
func (o Offer) ID() string {
	return o.IRI.ID()
}

// ClientName renders the embedded client for table display, "-" when the
// offer has no client attached.
func (o Offer) ClientName() string {
	if o.Client == nil {
		return "-"
	}
	name := o.Client.FirstName
	if o.Client.LastName != "" {
		if name != "" {
			name += " "
		}
		name += o.Client.LastName
	}
	if name == "" {
		return "-"
	}
	return name
}

// ProductSelection is one configured product line in an offer draft.
type ProductSelection struct {
	Options map[string]interface{} `json:"options"`
}

// CreateRequest is the offer payload posted to the backend as ld+json.
type CreateRequest struct {
	Client      string             `json:"client,omitempty"`
	Status      Status             `json:"status"`
	Products    []ProductSelection `json:"products"`
	ValidUntill string             `json:"validUntill,omitempty"`
}
