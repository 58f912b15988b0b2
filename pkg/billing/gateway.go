package billing

import (
	"context"
	"fmt"
	"math"
)

// Customer is the gateway-side payer record, keyed by email.
type Customer struct {
	ID    string
	Email string
	Name  string
}

// Invoice is a hosted invoice on the gateway. HostedInvoiceURL is only
// populated once the invoice has been finalized.
type Invoice struct {
	ID               string
	HostedInvoiceURL string
}

// Address is a shipping/billing address attached to a customer.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// CustomerParams carries the fields used to create or update a customer.
// Shipping, when set, is attached as both the shipping and default address.
type CustomerParams struct {
	Email    string
	Name     string
	Phone    string
	Shipping *Address
}

// Gateway is the payment-invoicing boundary. The production implementation
// is Stripe; offer flows only ever see this interface.
type Gateway interface {
	FindCustomerByEmail(ctx context.Context, email string) (*Customer, error)
	CreateCustomer(ctx context.Context, params CustomerParams) (Customer, error)
	UpdateCustomer(ctx context.Context, id string, params CustomerParams) (Customer, error)
	CreateInvoice(ctx context.Context, customerID string, daysUntilDue int64, metadata map[string]string) (Invoice, error)
	AddInvoiceLineItem(ctx context.Context, invoiceID, customerID string, amountMinorUnits int64, currency, description string) error
	FinalizeInvoice(ctx context.Context, invoiceID string) (Invoice, error)
	SendInvoice(ctx context.Context, invoiceID string) error
}

// Invoices are due three days after being sent.
const defaultDaysUntilDue = 3

// InvoiceRequest describes one payable offer: who owes, how much, and for
// what. Shipping is optional; when present it is recorded on the customer.
type InvoiceRequest struct {
	Email       string
	Name        string
	Phone       string
	Amount      float64
	Description string
	Shipping    *Address
	Metadata    map[string]string
}

// MinorUnits converts a decimal major-unit amount to integer minor units
// (cents), rounding half away from zero.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// IssueInvoice runs the full billing sequence for an offer: find or create
// the customer, open a draft invoice, attach the single line item, then
// finalize and send it. The returned invoice carries the hosted payment URL.
func IssueInvoice(ctx context.Context, gw Gateway, req InvoiceRequest) (Invoice, error) {
	params := CustomerParams{
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Shipping: req.Shipping,
	}

	existing, err := gw.FindCustomerByEmail(ctx, req.Email)
	if err != nil {
		return Invoice{}, fmt.Errorf("find customer: %w", err)
	}

	var customer Customer
	if existing == nil {
		customer, err = gw.CreateCustomer(ctx, params)
		if err != nil {
			return Invoice{}, fmt.Errorf("create customer: %w", err)
		}
	} else {
		customer, err = gw.UpdateCustomer(ctx, existing.ID, params)
		if err != nil {
			return Invoice{}, fmt.Errorf("update customer: %w", err)
		}
	}

	invoice, err := gw.CreateInvoice(ctx, customer.ID, defaultDaysUntilDue, req.Metadata)
	if err != nil {
		return Invoice{}, fmt.Errorf("create invoice: %w", err)
	}

	if err := gw.AddInvoiceLineItem(ctx, invoice.ID, customer.ID, MinorUnits(req.Amount), "usd", req.Description); err != nil {
		return Invoice{}, fmt.Errorf("add invoice line item: %w", err)
	}

	finalized, err := gw.FinalizeInvoice(ctx, invoice.ID)
	if err != nil {
		return Invoice{}, fmt.Errorf("finalize invoice: %w", err)
	}

	if err := gw.SendInvoice(ctx, finalized.ID); err != nil {
		return Invoice{}, fmt.Errorf("send invoice: %w", err)
	}

	return finalized, nil
}
