package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/entity"
)

var errBillingAmount = errors.New("informe um valor válido")

// BillingService relays AbacatePay charges through the remote API.
type BillingService struct {
	billing BillingGateway
	logger  *zap.Logger
}

func NewBillingService(billing BillingGateway, logger *zap.Logger) *BillingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillingService{billing: billing, logger: logger}
}

// Customer returns the billing customer of a client, or nil when none exists yet.
func (s *BillingService) Customer(ctx context.Context, clientID string) (entity.BillingCustomer, error) {
	c, err := s.billing.BillingCustomer(ctx, clientID)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, remoteFailure("carregar cliente AbacatePay", err)
	}
	return c, nil
}

func (s *BillingService) EnsureCustomer(ctx context.Context, clientID string) (entity.BillingCustomer, error) {
	c, err := s.billing.EnsureBillingCustomer(ctx, clientID)
	if err != nil {
		return nil, remoteFailure("criar cliente AbacatePay", err)
	}
	return c, nil
}

func (s *BillingService) Billings(ctx context.Context, clientID string) ([]entity.Billing, error) {
	list, err := s.billing.ListBillings(ctx, clientID)
	if err != nil {
		return nil, remoteFailure("carregar cobranças", err)
	}
	return list, nil
}

// CreateBilling validates the form, creates the charge and returns the refreshed list.
func (s *BillingService) CreateBilling(ctx context.Context, clientID string, in BillingInput) ([]entity.Billing, error) {
	amount, err := ParseMoney(string(in.Amount))
	if err != nil || amount <= 0 {
		return nil, validationError(errBillingAmount)
	}
	due := strings.TrimSpace(in.DueDate)
	if due != "" {
		if _, err := parseISODate(due); err != nil {
			return nil, validationErrors([]ValidationError{{"dueDate", "must be a valid date (YYYY-MM-DD)"}})
		}
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		desc = "Cobrança"
	}

	if _, err := s.billing.CreateBilling(ctx, clientID, entity.CreateBillingInput{
		Description: desc,
		Amount:      amount,
		DueDate:     due,
	}); err != nil {
		return nil, remoteFailure("criar cobrança", err)
	}
	s.logger.Info("billing created", zap.String("client_id", clientID), zap.Float64("amount", amount))
	return s.Billings(ctx, clientID)
}
