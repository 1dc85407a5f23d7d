package entity

import (
	"errors"
	"strings"
	"time"
)

type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClientProfile são campos livres do cliente que viajam junto com a oportunidade.
type ClientProfile struct {
	Website       string   `json:"website,omitempty"`
	ContactNumber string   `json:"contactNumber,omitempty"`
	Address       string   `json:"address,omitempty"`
	ClientRole    string   `json:"clientRole,omitempty"`
	ClientName    string   `json:"clientName,omitempty"`
	ClientPhone   string   `json:"clientPhone,omitempty"`
	ClientEmail   string   `json:"clientEmail,omitempty"`
	ClientAddress string   `json:"enderecoCliente,omitempty"`
	Social1       string   `json:"redesSocial1,omitempty"`
	Social2       string   `json:"redesSocial2,omitempty"`
	ExtraLinks    []string `json:"linksExtras,omitempty"`
}

// Deal (oportunidade). Pertence a exatamente um funil e uma etapa desse funil.
type Deal struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Value         float64   `json:"value"`
	ContactID     string    `json:"contactId,omitempty"`
	OwnerID       string    `json:"ownerId,omitempty"`
	Owner         *UserRef  `json:"owner,omitempty"`
	Probability   int       `json:"probability"`
	ExpectedClose time.Time `json:"expectedClose"`
	StageID       string    `json:"stageId"`
	FunnelID      string    `json:"funnelId"`
	CreatedAt     time.Time `json:"createdAt"`

	ClientProfile
}

func (d *Deal) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return errors.New("title is required")
	}
	if d.Value < 0 {
		return errors.New("value must not be negative")
	}
	if d.Probability < 0 || d.Probability > 100 {
		return errors.New("probability must be between 0 and 100")
	}
	if d.FunnelID == "" || d.StageID == "" {
		return errors.New("funnel and stage are required")
	}
	return nil
}

func (d Deal) Clone() Deal {
	out := d
	if d.Owner != nil {
		owner := *d.Owner
		out.Owner = &owner
	}
	out.ExtraLinks = append([]string(nil), d.ExtraLinks...)
	return out
}

// DigitsOnly remove tudo que não for dígito (telefones).
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
