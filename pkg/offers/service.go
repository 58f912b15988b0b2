package offers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"dgw/pkg/billing"
	"dgw/pkg/notify"
	"dgw/pkg/sendemail"
	"dgw/pkg/tier"
)

var (
	ErrItemSold       = errors.New("item is already sold")
	ErrInvalidAmount  = errors.New("offer amount must be greater than zero")
	ErrInvalidCounter = errors.New("counter amount must be greater than zero")
	ErrInvalidStatus  = errors.New("invalid offer status")
	ErrGateway        = errors.New("billing gateway error")
)

// Line-item description used when the item title cannot be resolved.
const fallbackInvoiceDescription = "DGW Private Client Purchase"

// SubmitOfferInput is a buyer's offer as it arrives from the public API.
type SubmitOfferInput struct {
	ItemID           string
	Name             string
	Email            string
	Phone            *string
	OfferAmount      float64
	Message          *string
	ShippingAddress1 *string
	ShippingAddress2 *string
	ShippingCity     *string
	ShippingState    *string
	ShippingZip      *string
	ShippingCountry  string
}

type OfferService interface {
	SubmitOffer(ctx context.Context, input SubmitOfferInput) (SubmitResult, error)
	AcceptOffer(ctx context.Context, id string, amountOverride *float64) (AcceptResult, error)
	DeclineOffer(ctx context.Context, id string) error
	CounterOffer(ctx context.Context, id string, amount float64) error
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateNotes(ctx context.Context, id, notes string) error
	GetOfferByID(ctx context.Context, id string) (Offer, error)
	ListOffers(ctx context.Context, filters OfferFilters, page, limit int) (OfferList, error)
}

type offerService struct {
	repo      OfferRepository
	gateway   billing.Gateway
	email     sendemail.EmailService
	publisher notify.Publisher
}

func NewOfferService(repo OfferRepository, gateway billing.Gateway, email sendemail.EmailService, publisher notify.Publisher) OfferService {
	return &offerService{repo: repo, gateway: gateway, email: email, publisher: publisher}
}

// SubmitOffer validates a buyer's offer, decides whether it auto-accepts,
// and persists it. Only standard-tier items auto-accept, and only when the
// amount clears a set reserve price. A billing failure on this path never
// fails the submission: the offer lands as pending for staff review.
func (s *offerService) SubmitOffer(ctx context.Context, input SubmitOfferInput) (SubmitResult, error) {
	if input.OfferAmount <= 0 {
		return SubmitResult{}, ErrInvalidAmount
	}

	item, err := s.repo.GetItemSnapshot(ctx, input.ItemID)
	if err != nil {
		return SubmitResult{}, err
	}
	if !item.IsActive {
		return SubmitResult{}, ErrItemNotFound
	}
	if item.IsSold {
		return SubmitResult{}, ErrItemSold
	}

	effective := tier.Resolve(item.OfferTier, item.ReservePrice)
	autoAccept := effective == tier.Standard && tier.MeetsReserve(item.ReservePrice, input.OfferAmount)

	if autoAccept {
		taken, err := s.repo.HasAcceptedOffer(ctx, item.ID)
		if err != nil {
			return SubmitResult{}, err
		}
		if taken {
			autoAccept = false
		}
	}

	offer := Offer{
		ID:               uuid.NewString(),
		ItemID:           input.ItemID,
		Name:             input.Name,
		Email:            input.Email,
		Phone:            input.Phone,
		OfferAmount:      input.OfferAmount,
		Message:          input.Message,
		ShippingAddress1: input.ShippingAddress1,
		ShippingAddress2: input.ShippingAddress2,
		ShippingCity:     input.ShippingCity,
		ShippingState:    input.ShippingState,
		ShippingZip:      input.ShippingZip,
		ShippingCountry:  input.ShippingCountry,
		Status:           StatusPending,
	}
	if offer.ShippingCountry == "" {
		offer.ShippingCountry = "US"
	}

	if autoAccept && s.gateway == nil {
		log.Printf("no billing gateway configured, offer %s falls back to pending", offer.ID)
		autoAccept = false
	}

	if autoAccept {
		invoice, err := billing.IssueInvoice(ctx, s.gateway, billing.InvoiceRequest{
			Email:       input.Email,
			Name:        input.Name,
			Phone:       deref(input.Phone),
			Amount:      input.OfferAmount,
			Description: invoiceDescription(item.Title),
			Shipping:    shippingAddress(input),
			Metadata: map[string]string{
				"offer_id": offer.ID,
				"item_id":  item.ID,
			},
		})
		if err != nil {
			log.Printf("auto-accept billing failed for offer %s, degrading to pending: %v", offer.ID, err)
		} else {
			now := time.Now()
			offer.Status = StatusAccepted
			offer.RespondedAt = &now
			offer.StripeInvoiceID = &invoice.ID
			offer.StripeInvoiceURL = &invoice.HostedInvoiceURL
		}
	}

	created, err := s.repo.InsertOffer(ctx, offer)
	if err != nil {
		return SubmitResult{}, err
	}

	if s.publisher != nil {
		s.publisher.Publish("offer.created", created)
	}
	s.notifyStaff(created, item.Title)

	return SubmitResult{
		OfferID:      created.ID,
		AutoAccepted: created.Status == StatusAccepted,
		InvoiceURL:   created.StripeInvoiceURL,
	}, nil
}

// AcceptOffer is the staff path. The invoice amount is the offer amount
// unless staff override it; the reserve price is deliberately not
// re-checked. A billing failure is surfaced and the offer is untouched.
func (s *offerService) AcceptOffer(ctx context.Context, id string, amountOverride *float64) (AcceptResult, error) {
	if amountOverride != nil && *amountOverride <= 0 {
		return AcceptResult{}, ErrInvalidAmount
	}

	if s.gateway == nil {
		return AcceptResult{}, fmt.Errorf("%w: no billing gateway configured", ErrGateway)
	}

	offer, err := s.repo.GetOfferByID(ctx, id)
	if err != nil {
		return AcceptResult{}, err
	}
	if offer.Status != StatusPending && offer.Status != StatusCountered {
		return AcceptResult{}, ErrStatusConflict
	}

	description := fallbackInvoiceDescription
	item, err := s.repo.GetItemSnapshot(ctx, offer.ItemID)
	if err == nil {
		description = invoiceDescription(item.Title)
	} else if !errors.Is(err, ErrItemNotFound) {
		return AcceptResult{}, err
	}

	amount := offer.OfferAmount
	if amountOverride != nil {
		amount = *amountOverride
	}

	invoice, err := billing.IssueInvoice(ctx, s.gateway, billing.InvoiceRequest{
		Email:       offer.Email,
		Name:        offer.Name,
		Phone:       deref(offer.Phone),
		Amount:      amount,
		Description: description,
		Metadata: map[string]string{
			"offer_id": offer.ID,
			"item_id":  offer.ItemID,
		},
	})
	if err != nil {
		return AcceptResult{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if err := s.repo.MarkAccepted(ctx, offer.ID, invoice.ID, invoice.HostedInvoiceURL); err != nil {
		if errors.Is(err, ErrStatusConflict) {
			// Invoice already went out; log it so staff can void it manually.
			log.Printf("acceptance refused after invoice %s was issued for offer %s", invoice.ID, offer.ID)
		}
		return AcceptResult{}, err
	}

	if s.publisher != nil {
		s.publisher.Publish("offer.accepted", map[string]string{
			"offer_id":    offer.ID,
			"item_id":     offer.ItemID,
			"invoice_id":  invoice.ID,
			"invoice_url": invoice.HostedInvoiceURL,
		})
	}

	return AcceptResult{InvoiceID: invoice.ID, InvoiceURL: invoice.HostedInvoiceURL}, nil
}

func (s *offerService) DeclineOffer(ctx context.Context, id string) error {
	return s.repo.Decline(ctx, id)
}

func (s *offerService) CounterOffer(ctx context.Context, id string, amount float64) error {
	if amount <= 0 {
		return ErrInvalidCounter
	}
	return s.repo.SetCounter(ctx, id, amount)
}

func (s *offerService) UpdateStatus(ctx context.Context, id, status string) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *offerService) UpdateNotes(ctx context.Context, id, notes string) error {
	return s.repo.UpdateNotes(ctx, id, notes)
}

func (s *offerService) GetOfferByID(ctx context.Context, id string) (Offer, error) {
	return s.repo.GetOfferByID(ctx, id)
}

func (s *offerService) ListOffers(ctx context.Context, filters OfferFilters, page, limit int) (OfferList, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	list, total, err := s.repo.ListOffers(ctx, filters, limit, offset)
	if err != nil {
		return OfferList{}, err
	}
	return OfferList{Offers: list, Total: total, Page: page, Limit: limit}, nil
}

func invoiceDescription(itemTitle string) string {
	if itemTitle == "" {
		return fallbackInvoiceDescription
	}
	return itemTitle
}

// shippingAddress builds a billing address from the submission, or nil when
// no street line was provided.
func shippingAddress(input SubmitOfferInput) *billing.Address {
	if input.ShippingAddress1 == nil || *input.ShippingAddress1 == "" {
		return nil
	}
	country := input.ShippingCountry
	if country == "" {
		country = "US"
	}
	return &billing.Address{
		Line1:      *input.ShippingAddress1,
		Line2:      deref(input.ShippingAddress2),
		City:       deref(input.ShippingCity),
		State:      deref(input.ShippingState),
		PostalCode: deref(input.ShippingZip),
		Country:    country,
	}
}

func (s *offerService) notifyStaff(offer Offer, itemTitle string) {
	to := os.Getenv("NOTIFY_EMAIL")
	if to == "" || s.email == nil {
		return
	}

	subject := fmt.Sprintf("New offer: $%.2f on %s", offer.OfferAmount, itemTitle)
	plain := fmt.Sprintf("%s <%s> offered $%.2f. Status: %s.", offer.Name, offer.Email, offer.OfferAmount, offer.Status)
	html := fmt.Sprintf(`<p><strong>%s</strong> &lt;%s&gt; offered <strong>$%.2f</strong> on %s.</p><p>Status: %s</p>`,
		offer.Name, offer.Email, offer.OfferAmount, itemTitle, offer.Status)

	if err := s.email.SendEmail(subject, to, plain, html); err != nil {
		log.Printf("offer notification email failed: %v", err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
