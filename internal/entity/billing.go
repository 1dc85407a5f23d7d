package entity

import (
	"fmt"
	"strconv"
)

// Billing is an AbacatePay charge as relayed by the remote API. The upstream payload
// is not stable, so fields are resolved from several alias keys.
type Billing map[string]any

func (b Billing) field(keys ...string) any {
	for _, k := range keys {
		if v, ok := b[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func (b Billing) ID() string {
	return stringify(b.field("id"))
}

func (b Billing) Description() string {
	if s := stringify(b.field("description", "title", "name")); s != "" {
		return s
	}
	return "Cobrança"
}

func (b Billing) Amount() float64 {
	switch v := b.field("amount", "value", "total", "price").(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

func (b Billing) DueDate() string {
	return stringify(b.field("dueDate", "due_date", "expiresAt", "expirationDate", "deadline"))
}

func (b Billing) Status() string {
	if s := stringify(b.field("status", "state")); s != "" {
		return s
	}
	return PaymentOpen
}

type BillingCustomer map[string]any

func (c BillingCustomer) Name() string {
	return stringify(Billing(c).field("name", "fullName"))
}

func (c BillingCustomer) Email() string {
	return stringify(Billing(c).field("email"))
}

func (c BillingCustomer) TaxID() string {
	return stringify(Billing(c).field("taxId", "tax_id", "document"))
}

type CreateBillingInput struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"dueDate"`
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
