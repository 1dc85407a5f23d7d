package lintra

import (
	"time"

	"github.com/xavierca1/lintra-console/internal/entity"
)

const DateLayout = "2006-01-02"

// OpportunityInput is the body of POST /opportunities/createOpportunity and of the
// full replacement PUT /opportunities/:id.
type OpportunityInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Probability int     `json:"probability"`
	PipelineID  string  `json:"pipelineId"`
	StageID     string  `json:"stageId"`
	ContactID   string  `json:"contactId,omitempty"`
	OwnerID     string  `json:"ownerId,omitempty"`
	DueDate     string  `json:"dueDate,omitempty"`

	entity.ClientProfile
}

type stagePatch struct {
	StageID string `json:"stageId"`
}

// opportunityResponse aceita as duas formas que o back devolve (stageId ou stage{}).
type opportunityResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
	Value       *float64 `json:"value"`
	Probability int      `json:"probability"`
	StageID     string   `json:"stageId"`
	Stage       *struct {
		ID string `json:"id"`
	} `json:"stage"`
	PipelineID string `json:"pipelineId"`
	ContactID  string `json:"contactId"`
	Contacts   []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"contacts"`
	OwnerID   string          `json:"ownerId"`
	Owner     *entity.UserRef `json:"owner"`
	DueDate   string          `json:"dueDate"`
	CreatedAt string          `json:"createdAt"`

	entity.ClientProfile
}

func (r opportunityResponse) toDeal() entity.Deal {
	d := entity.Deal{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Probability:   r.Probability,
		StageID:       r.StageID,
		FunnelID:      r.PipelineID,
		ContactID:     r.ContactID,
		OwnerID:       r.OwnerID,
		Owner:         r.Owner,
		ClientProfile: r.ClientProfile,
	}
	switch {
	case r.Amount != nil:
		d.Value = *r.Amount
	case r.Value != nil:
		d.Value = *r.Value
	}
	if d.StageID == "" && r.Stage != nil {
		d.StageID = r.Stage.ID
	}
	if len(r.Contacts) > 0 {
		d.ContactID = r.Contacts[0].ID
	}
	if d.OwnerID == "" && r.Owner != nil {
		d.OwnerID = r.Owner.ID
	}
	d.ExpectedClose = ParseDate(r.DueDate)
	d.CreatedAt = ParseDate(r.CreatedAt)
	return d
}

// ParseDate accepts both "2006-01-02" and RFC3339; anything else yields the zero time.
func ParseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatDate is the inverse of ParseDate for request bodies.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

type postsEnvelope struct {
	Posts []entity.Post `json:"posts"`
}

type billingCustomerEnvelope struct {
	Customer entity.BillingCustomer `json:"customer"`
}
