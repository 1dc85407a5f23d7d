package entity

import (
	"errors"
	"strings"
)

type ClientStatus string

const (
	ClientActive     ClientStatus = "ativo"
	ClientInactive   ClientStatus = "inativo"
	ClientOnboarding ClientStatus = "em_implantacao"
	PaymentPaid                   = "pago"
	PaymentOpen                   = "aberto"
	PaymentLate                   = "atrasado"
)

type Payment struct {
	ID          string  `json:"id,omitempty"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"dueDate"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

type Client struct {
	ID                   string       `json:"id,omitempty"`
	CompanyName          string       `json:"companyName"`
	CNPJ                 string       `json:"cnpj"`
	Segment              string       `json:"segment,omitempty"`
	ContactID            string       `json:"contactId,omitempty"`
	Project              string       `json:"project,omitempty"`
	Plan                 string       `json:"plan,omitempty"`
	Status               ClientStatus `json:"status"`
	AbacatepayCustomerID string       `json:"abacatepayCustomerId,omitempty"`
	Payments             []Payment    `json:"payments"`
	CreatedAt            string       `json:"createdAt,omitempty"`
	UpdatedAt            string       `json:"updatedAt,omitempty"`
}

func (c *Client) Validate() error {
	if strings.TrimSpace(c.CompanyName) == "" {
		return errors.New("companyName is required")
	}
	if strings.TrimSpace(c.CNPJ) == "" {
		return errors.New("cnpj is required")
	}
	switch c.Status {
	case "", ClientActive, ClientInactive, ClientOnboarding:
	default:
		return errors.New("status is invalid")
	}
	return nil
}

// OpenAmount soma os pagamentos ainda não quitados.
func (c *Client) OpenAmount() float64 {
	var total float64
	for _, p := range c.Payments {
		if p.Status != PaymentPaid {
			total += p.Amount
		}
	}
	return total
}
