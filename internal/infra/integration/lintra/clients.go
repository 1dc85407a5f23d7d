package lintra

import (
	"context"
	"net/http"
	"net/url"

	"github.com/xavierca1/lintra-console/internal/entity"
)

func (c *Client) ListClients(ctx context.Context) ([]entity.Client, error) {
	var out []entity.Client
	if err := c.do(ctx, http.MethodGet, "/clients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	var out entity.Client
	if err := c.do(ctx, http.MethodGet, "/clients/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateClient(ctx context.Context, in entity.Client) (*entity.Client, error) {
	var out entity.Client
	if err := c.do(ctx, http.MethodPost, "/clients/createClient", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateClient(ctx context.Context, id string, in entity.Client) (*entity.Client, error) {
	var out entity.Client
	if err := c.do(ctx, http.MethodPut, "/clients/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteClient(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/clients/"+url.PathEscape(id), nil, nil)
}

func (c *Client) AddPayment(ctx context.Context, clientID string, in entity.Payment) (*entity.Payment, error) {
	var out entity.Payment
	if err := c.do(ctx, http.MethodPost, "/clients/"+url.PathEscape(clientID)+"/payments", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePayment(ctx context.Context, paymentID string, in entity.Payment) (*entity.Payment, error) {
	var out entity.Payment
	if err := c.do(ctx, http.MethodPut, "/clients/payments/"+url.PathEscape(paymentID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePayment(ctx context.Context, paymentID string) error {
	return c.do(ctx, http.MethodDelete, "/clients/payments/"+url.PathEscape(paymentID), nil, nil)
}

// BillingCustomer returns nil when the client is not linked to AbacatePay yet.
func (c *Client) BillingCustomer(ctx context.Context, clientID string) (entity.BillingCustomer, error) {
	var out billingCustomerEnvelope
	if err := c.do(ctx, http.MethodGet, "/clients/"+url.PathEscape(clientID)+"/abacatepay/customer", nil, &out); err != nil {
		return nil, err
	}
	return out.Customer, nil
}

func (c *Client) EnsureBillingCustomer(ctx context.Context, clientID string) (entity.BillingCustomer, error) {
	var out billingCustomerEnvelope
	if err := c.do(ctx, http.MethodPost, "/clients/"+url.PathEscape(clientID)+"/abacatepay/customer", nil, &out); err != nil {
		return nil, err
	}
	return out.Customer, nil
}

func (c *Client) ListBillings(ctx context.Context, clientID string) ([]entity.Billing, error) {
	var out []entity.Billing
	if err := c.do(ctx, http.MethodGet, "/clients/"+url.PathEscape(clientID)+"/abacatepay/billings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBilling(ctx context.Context, clientID string, in entity.CreateBillingInput) (entity.Billing, error) {
	var out entity.Billing
	if err := c.do(ctx, http.MethodPost, "/clients/"+url.PathEscape(clientID)+"/abacatepay/billings", in, &out); err != nil {
		return nil, err
	}
	return out, nil
}
