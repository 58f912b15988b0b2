package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) FindCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*Customer)
	return c, args.Error(1)
}

func (m *mockGateway) CreateCustomer(ctx context.Context, params CustomerParams) (Customer, error) {
	args := m.Called(ctx, params)
	c, _ := args.Get(0).(Customer)
	return c, args.Error(1)
}

func (m *mockGateway) UpdateCustomer(ctx context.Context, id string, params CustomerParams) (Customer, error) {
	args := m.Called(ctx, id, params)
	c, _ := args.Get(0).(Customer)
	return c, args.Error(1)
}

func (m *mockGateway) CreateInvoice(ctx context.Context, customerID string, daysUntilDue int64, metadata map[string]string) (Invoice, error) {
	args := m.Called(ctx, customerID, daysUntilDue, metadata)
	inv, _ := args.Get(0).(Invoice)
	return inv, args.Error(1)
}

func (m *mockGateway) AddInvoiceLineItem(ctx context.Context, invoiceID, customerID string, amountMinorUnits int64, currency, description string) error {
	args := m.Called(ctx, invoiceID, customerID, amountMinorUnits, currency, description)
	return args.Error(0)
}

func (m *mockGateway) FinalizeInvoice(ctx context.Context, invoiceID string) (Invoice, error) {
	args := m.Called(ctx, invoiceID)
	inv, _ := args.Get(0).(Invoice)
	return inv, args.Error(1)
}

func (m *mockGateway) SendInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

func TestMinorUnits(t *testing.T) {
	require.Equal(t, int64(350000), MinorUnits(3500))
	require.Equal(t, int64(99), MinorUnits(0.99))
	require.Equal(t, int64(1050), MinorUnits(10.499))
	require.Equal(t, int64(1050), MinorUnits(10.505))
}

func TestIssueInvoice_NewCustomer(t *testing.T) {
	gw := new(mockGateway)
	ctx := context.Background()

	req := InvoiceRequest{
		Email:       "buyer@example.com",
		Name:        "A Buyer",
		Amount:      3500,
		Description: "Patek Philippe Nautilus",
		Metadata:    map[string]string{"item_id": "item-1"},
	}

	gw.On("FindCustomerByEmail", ctx, "buyer@example.com").Return((*Customer)(nil), nil)
	gw.On("CreateCustomer", ctx, CustomerParams{Email: "buyer@example.com", Name: "A Buyer"}).
		Return(Customer{ID: "cus_1", Email: "buyer@example.com"}, nil)
	gw.On("CreateInvoice", ctx, "cus_1", int64(3), req.Metadata).Return(Invoice{ID: "in_1"}, nil)
	gw.On("AddInvoiceLineItem", ctx, "in_1", "cus_1", int64(350000), "usd", "Patek Philippe Nautilus").Return(nil)
	gw.On("FinalizeInvoice", ctx, "in_1").Return(Invoice{ID: "in_1", HostedInvoiceURL: "https://pay.example/in_1"}, nil)
	gw.On("SendInvoice", ctx, "in_1").Return(nil)

	inv, err := IssueInvoice(ctx, gw, req)

	require.NoError(t, err)
	require.Equal(t, "in_1", inv.ID)
	require.Equal(t, "https://pay.example/in_1", inv.HostedInvoiceURL)
	gw.AssertExpectations(t)
}

func TestIssueInvoice_ExistingCustomerUpdated(t *testing.T) {
	gw := new(mockGateway)
	ctx := context.Background()

	shipping := &Address{Line1: "1 Main St", City: "NYC", State: "NY", PostalCode: "10001", Country: "US"}
	req := InvoiceRequest{Email: "repeat@example.com", Name: "Repeat Buyer", Amount: 100, Description: "Lot 12", Shipping: shipping}

	gw.On("FindCustomerByEmail", ctx, "repeat@example.com").Return(&Customer{ID: "cus_9"}, nil)
	gw.On("UpdateCustomer", ctx, "cus_9", CustomerParams{Email: "repeat@example.com", Name: "Repeat Buyer", Shipping: shipping}).
		Return(Customer{ID: "cus_9"}, nil)
	gw.On("CreateInvoice", ctx, "cus_9", int64(3), map[string]string(nil)).Return(Invoice{ID: "in_9"}, nil)
	gw.On("AddInvoiceLineItem", ctx, "in_9", "cus_9", int64(10000), "usd", "Lot 12").Return(nil)
	gw.On("FinalizeInvoice", ctx, "in_9").Return(Invoice{ID: "in_9", HostedInvoiceURL: "https://pay.example/in_9"}, nil)
	gw.On("SendInvoice", ctx, "in_9").Return(nil)

	inv, err := IssueInvoice(ctx, gw, req)

	require.NoError(t, err)
	require.Equal(t, "in_9", inv.ID)
	gw.AssertExpectations(t)
}

func TestIssueInvoice_FinalizeFails(t *testing.T) {
	gw := new(mockGateway)
	ctx := context.Background()

	gw.On("FindCustomerByEmail", ctx, "x@example.com").Return((*Customer)(nil), nil)
	gw.On("CreateCustomer", ctx, mock.Anything).Return(Customer{ID: "cus_2"}, nil)
	gw.On("CreateInvoice", ctx, "cus_2", int64(3), map[string]string(nil)).Return(Invoice{ID: "in_2"}, nil)
	gw.On("AddInvoiceLineItem", ctx, "in_2", "cus_2", int64(500000), "usd", "Lot 3").Return(nil)
	gw.On("FinalizeInvoice", ctx, "in_2").Return(Invoice{}, errors.New("stripe unavailable"))

	_, err := IssueInvoice(ctx, gw, InvoiceRequest{Email: "x@example.com", Name: "X", Amount: 5000, Description: "Lot 3"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "finalize invoice")
	gw.AssertNotCalled(t, "SendInvoice", mock.Anything, mock.Anything)
}

func TestIssueInvoice_FindFails(t *testing.T) {
	gw := new(mockGateway)
	ctx := context.Background()

	gw.On("FindCustomerByEmail", ctx, "y@example.com").Return((*Customer)(nil), errors.New("network"))

	_, err := IssueInvoice(ctx, gw, InvoiceRequest{Email: "y@example.com", Name: "Y", Amount: 10, Description: "d"})

	require.Error(t, err)
	gw.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
}
