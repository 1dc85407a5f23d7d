package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/infra/integration/lintra"
)

func TestBillingService_CreateRefreshesList(t *testing.T) {
	gw := new(MockBillingGateway)
	gw.On("CreateBilling", mock.Anything, "c1", entity.CreateBillingInput{
		Description: "Cobrança", Amount: 99.9, DueDate: "2026-12-01",
	}).Return(entity.Billing{"id": "b1"}, nil).Once()
	gw.On("ListBillings", mock.Anything, "c1").Return([]entity.Billing{{"id": "b1", "amount": 99.9}}, nil).Once()

	list, err := NewBillingService(gw, nil).CreateBilling(context.Background(), "c1", BillingInput{Amount: "99,9", DueDate: "2026-12-01"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 99.9, list[0].Amount())
	gw.AssertExpectations(t)
}

func TestBillingService_CreateAcceptsThousandsSeparator(t *testing.T) {
	gw := new(MockBillingGateway)
	for _, raw := range []FormValue{"1.234,56", "R$ 1.234,56", "1234.56"} {
		gw.On("CreateBilling", mock.Anything, "c1", entity.CreateBillingInput{
			Description: "Cobrança", Amount: 1234.56,
		}).Return(entity.Billing{"id": "b1"}, nil).Once()
		gw.On("ListBillings", mock.Anything, "c1").Return([]entity.Billing{}, nil).Once()

		_, err := NewBillingService(gw, nil).CreateBilling(context.Background(), "c1", BillingInput{Amount: raw})
		require.NoError(t, err, string(raw))
	}
	gw.AssertExpectations(t)
}

func TestBillingService_InvalidAmount(t *testing.T) {
	gw := new(MockBillingGateway)
	svc := NewBillingService(gw, nil)

	for _, raw := range []FormValue{"", "0", "abc", "-5"} {
		_, err := svc.CreateBilling(context.Background(), "c1", BillingInput{Amount: raw})
		assert.EqualError(t, err, "informe um valor válido", string(raw))
	}
	gw.AssertNotCalled(t, "CreateBilling", mock.Anything, mock.Anything, mock.Anything)
}

func TestBillingService_CustomerMissing(t *testing.T) {
	gw := new(MockBillingGateway)
	gw.On("BillingCustomer", mock.Anything, "c1").Return(nil, &lintra.APIError{Status: 404})
	gw.On("BillingCustomer", mock.Anything, "c2").Return(nil, errors.New("offline"))
	svc := NewBillingService(gw, nil)

	c, err := svc.Customer(context.Background(), "c1")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = svc.Customer(context.Background(), "c2")
	assert.EqualError(t, err, "Erro ao carregar cliente AbacatePay.")
}
