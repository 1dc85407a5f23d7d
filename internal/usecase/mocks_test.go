package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/infra/integration/lintra"
	"github.com/xavierca1/lintra-console/internal/infra/queue"
)

type MockPipelineGateway struct {
	mock.Mock
}

func (m *MockPipelineGateway) ListPipelines(ctx context.Context) ([]entity.Funnel, error) {
	args := m.Called(ctx)
	f, _ := args.Get(0).([]entity.Funnel)
	return f, args.Error(1)
}

func (m *MockPipelineGateway) CreatePipeline(ctx context.Context, name string, stages []entity.Stage) (*entity.Funnel, error) {
	args := m.Called(ctx, name, stages)
	f, _ := args.Get(0).(*entity.Funnel)
	return f, args.Error(1)
}

func (m *MockPipelineGateway) UpdatePipeline(ctx context.Context, id, name string, stages []entity.Stage) (*entity.Funnel, error) {
	args := m.Called(ctx, id, name, stages)
	f, _ := args.Get(0).(*entity.Funnel)
	return f, args.Error(1)
}

func (m *MockPipelineGateway) DeletePipeline(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockOpportunityGateway struct {
	mock.Mock
}

func (m *MockOpportunityGateway) ListOpportunities(ctx context.Context, pipelineID string) ([]entity.Deal, error) {
	args := m.Called(ctx, pipelineID)
	d, _ := args.Get(0).([]entity.Deal)
	return d, args.Error(1)
}

func (m *MockOpportunityGateway) CreateOpportunity(ctx context.Context, in lintra.OpportunityInput) (*entity.Deal, error) {
	args := m.Called(ctx, in)
	d, _ := args.Get(0).(*entity.Deal)
	return d, args.Error(1)
}

func (m *MockOpportunityGateway) UpdateOpportunity(ctx context.Context, id string, in lintra.OpportunityInput) (*entity.Deal, error) {
	args := m.Called(ctx, id, in)
	d, _ := args.Get(0).(*entity.Deal)
	return d, args.Error(1)
}

func (m *MockOpportunityGateway) MoveOpportunity(ctx context.Context, id, stageID string) error {
	return m.Called(ctx, id, stageID).Error(0)
}

func (m *MockOpportunityGateway) DeleteOpportunity(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockDirectoryGateway struct {
	mock.Mock
}

func (m *MockDirectoryGateway) ListUsers(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	u, _ := args.Get(0).([]entity.User)
	return u, args.Error(1)
}

func (m *MockDirectoryGateway) ListContacts(ctx context.Context) ([]entity.Contact, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]entity.Contact)
	return c, args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBoardEvent(ctx context.Context, ev queue.BoardEvent) error {
	return m.Called(ctx, ev).Error(0)
}

type MockClientGateway struct {
	mock.Mock
}

func (m *MockClientGateway) ListClients(ctx context.Context) ([]entity.Client, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]entity.Client)
	return c, args.Error(1)
}

func (m *MockClientGateway) GetClient(ctx context.Context, id string) (*entity.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*entity.Client)
	return c, args.Error(1)
}

func (m *MockClientGateway) CreateClient(ctx context.Context, in entity.Client) (*entity.Client, error) {
	args := m.Called(ctx, in)
	c, _ := args.Get(0).(*entity.Client)
	return c, args.Error(1)
}

func (m *MockClientGateway) UpdateClient(ctx context.Context, id string, in entity.Client) (*entity.Client, error) {
	args := m.Called(ctx, id, in)
	c, _ := args.Get(0).(*entity.Client)
	return c, args.Error(1)
}

func (m *MockClientGateway) DeleteClient(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockClientGateway) AddPayment(ctx context.Context, clientID string, in entity.Payment) (*entity.Payment, error) {
	args := m.Called(ctx, clientID, in)
	p, _ := args.Get(0).(*entity.Payment)
	return p, args.Error(1)
}

func (m *MockClientGateway) UpdatePayment(ctx context.Context, paymentID string, in entity.Payment) (*entity.Payment, error) {
	args := m.Called(ctx, paymentID, in)
	p, _ := args.Get(0).(*entity.Payment)
	return p, args.Error(1)
}

func (m *MockClientGateway) DeletePayment(ctx context.Context, paymentID string) error {
	return m.Called(ctx, paymentID).Error(0)
}

type MockBillingGateway struct {
	mock.Mock
}

func (m *MockBillingGateway) BillingCustomer(ctx context.Context, clientID string) (entity.BillingCustomer, error) {
	args := m.Called(ctx, clientID)
	c, _ := args.Get(0).(entity.BillingCustomer)
	return c, args.Error(1)
}

func (m *MockBillingGateway) EnsureBillingCustomer(ctx context.Context, clientID string) (entity.BillingCustomer, error) {
	args := m.Called(ctx, clientID)
	c, _ := args.Get(0).(entity.BillingCustomer)
	return c, args.Error(1)
}

func (m *MockBillingGateway) ListBillings(ctx context.Context, clientID string) ([]entity.Billing, error) {
	args := m.Called(ctx, clientID)
	b, _ := args.Get(0).([]entity.Billing)
	return b, args.Error(1)
}

func (m *MockBillingGateway) CreateBilling(ctx context.Context, clientID string, in entity.CreateBillingInput) (entity.Billing, error) {
	args := m.Called(ctx, clientID, in)
	b, _ := args.Get(0).(entity.Billing)
	return b, args.Error(1)
}

type MockPostGateway struct {
	mock.Mock
}

func (m *MockPostGateway) ListPosts(ctx context.Context) ([]entity.Post, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]entity.Post)
	return p, args.Error(1)
}

func (m *MockPostGateway) GetPost(ctx context.Context, id string) (*entity.Post, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.Post)
	return p, args.Error(1)
}

func (m *MockPostGateway) UpdatePost(ctx context.Context, id string, in entity.PostInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockPostGateway) SetPostStatus(ctx context.Context, id string, status entity.PostStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockPostGateway) DeletePost(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostGateway) ListCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]entity.Category)
	return c, args.Error(1)
}

type MockTransitionRepository struct {
	mock.Mock
}

func (m *MockTransitionRepository) Insert(ctx context.Context, t *entity.StageTransition) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTransitionRepository) ListByDeal(ctx context.Context, dealID string) ([]entity.StageTransition, error) {
	args := m.Called(ctx, dealID)
	t, _ := args.Get(0).([]entity.StageTransition)
	return t, args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyStageChange(to, ownerName, dealTitle, stageName string) error {
	return m.Called(to, ownerName, dealTitle, stageName).Error(0)
}

// salesFunnel is the funnel used across the board tests.
func salesFunnel() entity.Funnel {
	return entity.Funnel{
		ID:   "p1",
		Name: "Sales",
		Stages: []entity.Stage{
			{ID: "s1", Name: "Lead", Color: "#F59E0B"},
			{ID: "s2", Name: "Fechado", Color: "#10B981"},
		},
	}
}

func seededStore(deals ...entity.Deal) *Store {
	s := NewStore()
	s.SetFunnels([]entity.Funnel{salesFunnel()})
	for _, d := range deals {
		if d.FunnelID == "" {
			d.FunnelID = "p1"
		}
		s.AppendDeal(d)
	}
	return s
}
