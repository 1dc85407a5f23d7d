package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/entity"
)

type ClientService struct {
	clients ClientGateway
	logger  *zap.Logger
}

func NewClientService(clients ClientGateway, logger *zap.Logger) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{clients: clients, logger: logger}
}

func (s *ClientService) List(ctx context.Context) ([]entity.Client, error) {
	list, err := s.clients.ListClients(ctx)
	if err != nil {
		return nil, remoteFailure("carregar clientes", err)
	}
	return list, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*entity.Client, error) {
	c, err := s.clients.GetClient(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, notFound("cliente não encontrado")
		}
		return nil, remoteFailure("carregar cliente", err)
	}
	return c, nil
}

func (s *ClientService) Create(ctx context.Context, in entity.Client) (*entity.Client, error) {
	normalizeClient(&in)
	if in.Status == "" {
		in.Status = entity.ClientActive
	}
	if err := in.Validate(); err != nil {
		return nil, validationError(err)
	}
	c, err := s.clients.CreateClient(ctx, in)
	if err != nil {
		return nil, remoteFailure("criar cliente", err)
	}
	s.logger.Info("client created", zap.String("client_id", c.ID))
	return c, nil
}

func (s *ClientService) Update(ctx context.Context, id string, in entity.Client) (*entity.Client, error) {
	normalizeClient(&in)
	if err := in.Validate(); err != nil {
		return nil, validationError(err)
	}
	c, err := s.clients.UpdateClient(ctx, id, in)
	if err != nil {
		if IsNotFound(err) {
			return nil, notFound("cliente não encontrado")
		}
		return nil, remoteFailure("atualizar cliente", err)
	}
	return c, nil
}

func (s *ClientService) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if !confirm.Confirm("Tem certeza que deseja excluir este cliente?") {
		return false, nil
	}
	if err := s.clients.DeleteClient(ctx, id); err != nil {
		return false, remoteFailure("excluir cliente", err)
	}
	s.logger.Info("client deleted", zap.String("client_id", id))
	return true, nil
}

func (s *ClientService) AddPayment(ctx context.Context, clientID string, in PaymentInput) (*entity.Payment, error) {
	p, err := parsePayment(in)
	if err != nil {
		return nil, err
	}
	out, err := s.clients.AddPayment(ctx, clientID, p)
	if err != nil {
		return nil, remoteFailure("registrar pagamento", err)
	}
	return out, nil
}

func (s *ClientService) UpdatePayment(ctx context.Context, paymentID string, in PaymentInput) (*entity.Payment, error) {
	p, err := parsePayment(in)
	if err != nil {
		return nil, err
	}
	out, err := s.clients.UpdatePayment(ctx, paymentID, p)
	if err != nil {
		return nil, remoteFailure("atualizar pagamento", err)
	}
	return out, nil
}

func (s *ClientService) DeletePayment(ctx context.Context, paymentID string, confirm Confirmer) (bool, error) {
	if !confirm.Confirm("Excluir este pagamento?") {
		return false, nil
	}
	if err := s.clients.DeletePayment(ctx, paymentID); err != nil {
		return false, remoteFailure("excluir pagamento", err)
	}
	return true, nil
}

func normalizeClient(c *entity.Client) {
	c.CompanyName = strings.TrimSpace(c.CompanyName)
	c.CNPJ = strings.TrimSpace(c.CNPJ)
}

func parsePayment(in PaymentInput) (entity.Payment, error) {
	var errs []ValidationError
	amount, err := ParseMoney(string(in.Amount))
	switch {
	case err != nil:
		errs = append(errs, ValidationError{"amount", err.Error()})
	case amount <= 0:
		errs = append(errs, ValidationError{"amount", "must be greater than zero"})
	}
	if _, err := parseISODate(in.DueDate); err != nil {
		errs = append(errs, ValidationError{"dueDate", "must be a valid date (YYYY-MM-DD)"})
	}
	status := in.Status
	if status == "" {
		status = entity.PaymentOpen
	}
	switch status {
	case entity.PaymentPaid, entity.PaymentOpen, entity.PaymentLate:
	default:
		errs = append(errs, ValidationError{"status", "is invalid"})
	}
	if len(errs) > 0 {
		return entity.Payment{}, validationErrors(errs)
	}
	return entity.Payment{
		Amount:      amount,
		DueDate:     strings.TrimSpace(in.DueDate),
		Status:      status,
		Description: in.Description,
	}, nil
}
