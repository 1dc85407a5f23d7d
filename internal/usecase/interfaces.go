package usecase

import (
	"context"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/infra/integration/lintra"
	"github.com/xavierca1/lintra-console/internal/infra/queue"
)

type PipelineGateway interface {
	ListPipelines(ctx context.Context) ([]entity.Funnel, error)
	CreatePipeline(ctx context.Context, name string, stages []entity.Stage) (*entity.Funnel, error)
	UpdatePipeline(ctx context.Context, id, name string, stages []entity.Stage) (*entity.Funnel, error)
	DeletePipeline(ctx context.Context, id string) error
}

type OpportunityGateway interface {
	ListOpportunities(ctx context.Context, pipelineID string) ([]entity.Deal, error)
	CreateOpportunity(ctx context.Context, in lintra.OpportunityInput) (*entity.Deal, error)
	UpdateOpportunity(ctx context.Context, id string, in lintra.OpportunityInput) (*entity.Deal, error)
	MoveOpportunity(ctx context.Context, id, stageID string) error
	DeleteOpportunity(ctx context.Context, id string) error
}

type DirectoryGateway interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	ListContacts(ctx context.Context) ([]entity.Contact, error)
}

type ClientGateway interface {
	ListClients(ctx context.Context) ([]entity.Client, error)
	GetClient(ctx context.Context, id string) (*entity.Client, error)
	CreateClient(ctx context.Context, in entity.Client) (*entity.Client, error)
	UpdateClient(ctx context.Context, id string, in entity.Client) (*entity.Client, error)
	DeleteClient(ctx context.Context, id string) error
	AddPayment(ctx context.Context, clientID string, in entity.Payment) (*entity.Payment, error)
	UpdatePayment(ctx context.Context, paymentID string, in entity.Payment) (*entity.Payment, error)
	DeletePayment(ctx context.Context, paymentID string) error
}

type BillingGateway interface {
	BillingCustomer(ctx context.Context, clientID string) (entity.BillingCustomer, error)
	EnsureBillingCustomer(ctx context.Context, clientID string) (entity.BillingCustomer, error)
	ListBillings(ctx context.Context, clientID string) ([]entity.Billing, error)
	CreateBilling(ctx context.Context, clientID string, in entity.CreateBillingInput) (entity.Billing, error)
}

type PostGateway interface {
	ListPosts(ctx context.Context) ([]entity.Post, error)
	GetPost(ctx context.Context, id string) (*entity.Post, error)
	UpdatePost(ctx context.Context, id string, in entity.PostInput) error
	SetPostStatus(ctx context.Context, id string, status entity.PostStatus) error
	DeletePost(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]entity.Category, error)
}

type EventPublisher interface {
	PublishBoardEvent(ctx context.Context, event queue.BoardEvent) error
}

type StageChangeNotifier interface {
	NotifyStageChange(to, ownerName, dealTitle, stageName string) error
}

// Confirmer asks the user before destructive actions.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Confirmed always answers yes; used when the caller already asked.
var Confirmed Confirmer = ConfirmFunc(func(string) bool { return true })
