package client

import "ofertare-gateway/internal/hydra"

type BillingAddress struct {
	County             string `json:"county,omitempty"`
	CompanyName        string `json:"companyName,omitempty"`
	VATNumber          string `json:"vatNumber,omitempty"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	Bank               string `json:"bank,omitempty"`
	IBAN               string `json:"iban,omitempty"`
	City               string `json:"city,omitempty"`
	Address            string `json:"address,omitempty"`
}

type Client struct {
	IRI              hydra.IRI        `json:"@id,omitempty"`
	ID               string           `json:"id,omitempty"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	Orders           int              `json:"orders,omitempty"`
	BillingAddresses []BillingAddress `json:"billingAddresses,omitempty"`
}

// FullName joins the client's first and last name for display.
func (c Client) FullName() string {
	switch {
	case c.FirstName == "" && c.LastName == "":
		return "-"
	case c.LastName == "":
		return c.FirstName
	case c.FirstName == "":
		return c.LastName
	default:
		return c.FirstName + " " + c.LastName
	}
}
