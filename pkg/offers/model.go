package offers

import "time"

const (
	StatusPending     = "pending"
	StatusAccepted    = "accepted"
	StatusDeclined    = "declined"
	StatusCountered   = "countered"
	StatusExpired     = "expired"
	StatusInvoiceSent = "invoice_sent"
	StatusPaid        = "paid"
	StatusSold        = "sold"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusAccepted, StatusDeclined, StatusCountered,
		StatusExpired, StatusInvoiceSent, StatusPaid, StatusSold:
		return true
	default:
		return false
	}
}

type Offer struct {
	ID               string     `json:"id"`
	ItemID           string     `json:"item_id"`
	ItemTitle        *string    `json:"item_title,omitempty"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Phone            *string    `json:"phone,omitempty"`
	OfferAmount      float64    `json:"offer_amount"`
	Message          *string    `json:"message,omitempty"`
	ShippingAddress1 *string    `json:"shipping_address1,omitempty"`
	ShippingAddress2 *string    `json:"shipping_address2,omitempty"`
	ShippingCity     *string    `json:"shipping_city,omitempty"`
	ShippingState    *string    `json:"shipping_state,omitempty"`
	ShippingZip      *string    `json:"shipping_zip,omitempty"`
	ShippingCountry  string     `json:"shipping_country"`
	Status           string     `json:"status"`
	CounterAmount    *float64   `json:"counter_amount,omitempty"`
	AdminNotes       *string    `json:"admin_notes,omitempty"`
	StripeInvoiceID  *string    `json:"stripe_invoice_id,omitempty"`
	StripeInvoiceURL *string    `json:"stripe_invoice_url,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	RespondedAt      *time.Time `json:"responded_at,omitempty"`
}

// ItemSnapshot is the slice of an item that offer evaluation reads: the
// reserve/tier inputs plus the sold and active flags.
type ItemSnapshot struct {
	ID           string
	Title        string
	ReservePrice *float64
	OfferTier    *string
	IsSold       bool
	IsActive     bool
}

// SubmitResult is returned to the buyer after an offer submission.
type SubmitResult struct {
	OfferID      string  `json:"offer_id"`
	AutoAccepted bool    `json:"auto_accepted"`
	InvoiceURL   *string `json:"invoice_url,omitempty"`
}

// AcceptResult is returned to staff after a manual acceptance.
type AcceptResult struct {
	InvoiceID  string `json:"invoice_id"`
	InvoiceURL string `json:"invoice_url"`
}

type OfferList struct {
	Offers []Offer `json:"offers"`
	Total  int64   `json:"total"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}
