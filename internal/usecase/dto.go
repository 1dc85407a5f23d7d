package usecase

import (
	"bytes"
	"encoding/json"

	"github.com/xavierca1/lintra-console/internal/entity"
)

// FormValue is raw form input. It decodes from both JSON strings and numbers so
// parsing and validation happen in one place.
type FormValue string

func (v *FormValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	*v = FormValue(b)
	return nil
}

type DealProfile = entity.ClientProfile

// DealInput is what the deal form submits.
type DealInput struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Value         FormValue `json:"value"`
	Probability   FormValue `json:"probability"`
	ContactID     string    `json:"contactId"`
	OwnerID       string    `json:"ownerId"`
	ExpectedClose string    `json:"expectedClose"`
	StageID       string    `json:"stageId,omitempty"`

	DealProfile
}

// Column is one rendered stage of the board.
type Column struct {
	Stage Stage         `json:"stage"`
	Deals []entity.Deal `json:"deals"`
	Count int           `json:"count"`
	Total float64       `json:"total"`
}

type Stage = entity.Stage

type BillingInput struct {
	Description string    `json:"description"`
	Amount      FormValue `json:"amount"`
	DueDate     string    `json:"dueDate"`
}

type PaymentInput struct {
	Amount      FormValue `json:"amount"`
	DueDate     string    `json:"dueDate"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
}
