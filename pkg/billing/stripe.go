package billing

import (
	"context"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

type stripeGateway struct {
	api *client.API
}

// NewStripeGateway builds a Gateway backed by the Stripe API.
func NewStripeGateway(apiKey string) Gateway {
	return &stripeGateway{api: client.New(apiKey, nil)}
}

func (g *stripeGateway) FindCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := g.api.Customers.List(params)
	if iter.Next() {
		c := iter.Customer()
		return &Customer{ID: c.ID, Email: c.Email, Name: c.Name}, nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (g *stripeGateway) CreateCustomer(ctx context.Context, params CustomerParams) (Customer, error) {
	cp := customerParams(params)
	cp.Context = ctx
	cp.AddMetadata("source", "dgw_private_client")

	c, err := g.api.Customers.New(cp)
	if err != nil {
		return Customer{}, err
	}
	return Customer{ID: c.ID, Email: c.Email, Name: c.Name}, nil
}

func (g *stripeGateway) UpdateCustomer(ctx context.Context, id string, params CustomerParams) (Customer, error) {
	cp := customerParams(params)
	cp.Context = ctx
	// Email is the lookup key; never rewritten on update.
	cp.Email = nil

	c, err := g.api.Customers.Update(id, cp)
	if err != nil {
		return Customer{}, err
	}
	return Customer{ID: c.ID, Email: c.Email, Name: c.Name}, nil
}

func (g *stripeGateway) CreateInvoice(ctx context.Context, customerID string, daysUntilDue int64, metadata map[string]string) (Invoice, error) {
	params := &stripe.InvoiceParams{
		Customer:         stripe.String(customerID),
		CollectionMethod: stripe.String(string(stripe.InvoiceCollectionMethodSendInvoice)),
		DaysUntilDue:     stripe.Int64(daysUntilDue),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	inv, err := g.api.Invoices.New(params)
	if err != nil {
		return Invoice{}, err
	}
	return Invoice{ID: inv.ID, HostedInvoiceURL: inv.HostedInvoiceURL}, nil
}

func (g *stripeGateway) AddInvoiceLineItem(ctx context.Context, invoiceID, customerID string, amountMinorUnits int64, currency, description string) error {
	params := &stripe.InvoiceItemParams{
		Customer:    stripe.String(customerID),
		Invoice:     stripe.String(invoiceID),
		Amount:      stripe.Int64(amountMinorUnits),
		Currency:    stripe.String(currency),
		Description: stripe.String(description),
	}
	params.Context = ctx

	_, err := g.api.InvoiceItems.New(params)
	return err
}

func (g *stripeGateway) FinalizeInvoice(ctx context.Context, invoiceID string) (Invoice, error) {
	params := &stripe.InvoiceFinalizeInvoiceParams{}
	params.Context = ctx

	inv, err := g.api.Invoices.FinalizeInvoice(invoiceID, params)
	if err != nil {
		return Invoice{}, err
	}
	return Invoice{ID: inv.ID, HostedInvoiceURL: inv.HostedInvoiceURL}, nil
}

func (g *stripeGateway) SendInvoice(ctx context.Context, invoiceID string) error {
	params := &stripe.InvoiceSendInvoiceParams{}
	params.Context = ctx

	_, err := g.api.Invoices.SendInvoice(invoiceID, params)
	return err
}

func customerParams(params CustomerParams) *stripe.CustomerParams {
	cp := &stripe.CustomerParams{
		Email: stripe.String(params.Email),
		Name:  stripe.String(params.Name),
	}
	if params.Phone != "" {
		cp.Phone = stripe.String(params.Phone)
	}
	if params.Shipping != nil {
		addr := &stripe.AddressParams{
			Line1:      stripe.String(params.Shipping.Line1),
			City:       stripe.String(params.Shipping.City),
			State:      stripe.String(params.Shipping.State),
			PostalCode: stripe.String(params.Shipping.PostalCode),
			Country:    stripe.String(params.Shipping.Country),
		}
		if params.Shipping.Line2 != "" {
			addr.Line2 = stripe.String(params.Shipping.Line2)
		}
		shipping := &stripe.CustomerShippingParams{
			Name:    stripe.String(params.Name),
			Address: addr,
		}
		if params.Phone != "" {
			shipping.Phone = stripe.String(params.Phone)
		}
		cp.Shipping = shipping
		// Same address doubles as the customer default.
		cp.Address = addr
	}
	return cp
}
