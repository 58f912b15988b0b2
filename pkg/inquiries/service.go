package inquiries

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"dgw/pkg/notify"
	"dgw/pkg/sendemail"
)

var ErrInvalidStatus = errors.New("invalid inquiry status")

type InquiryService interface {
	SubmitInquiry(ctx context.Context, input Inquiry) (Inquiry, error)
	GetInquiryByID(ctx context.Context, id string) (Inquiry, error)
	ListInquiries(ctx context.Context, status *string, page, limit int) ([]Inquiry, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateNotes(ctx context.Context, id, notes string) error
}

type inquiryService struct {
	repo      InquiryRepository
	email     sendemail.EmailService
	publisher notify.Publisher
}

func NewInquiryService(repo InquiryRepository, email sendemail.EmailService, publisher notify.Publisher) InquiryService {
	return &inquiryService{repo: repo, email: email, publisher: publisher}
}

func (s *inquiryService) SubmitInquiry(ctx context.Context, input Inquiry) (Inquiry, error) {
	input.ID = uuid.NewString()
	input.Status = StatusNew

	created, err := s.repo.CreateInquiry(ctx, input)
	if err != nil {
		return Inquiry{}, err
	}

	if s.publisher != nil {
		s.publisher.Publish("inquiry.created", created)
	}
	s.notifyStaff(created)

	return created, nil
}

func (s *inquiryService) GetInquiryByID(ctx context.Context, id string) (Inquiry, error) {
	return s.repo.GetInquiryByID(ctx, id)
}

func (s *inquiryService) ListInquiries(ctx context.Context, status *string, page, limit int) ([]Inquiry, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.ListInquiries(ctx, status, limit, offset)
}

func (s *inquiryService) UpdateStatus(ctx context.Context, id, status string) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *inquiryService) UpdateNotes(ctx context.Context, id, notes string) error {
	return s.repo.UpdateNotes(ctx, id, notes)
}

// notifyStaff emails the configured inbox about a new inquiry. Failures are
// logged, never surfaced; intake must not depend on email delivery.
func (s *inquiryService) notifyStaff(inq Inquiry) {
	to := os.Getenv("NOTIFY_EMAIL")
	if to == "" || s.email == nil {
		return
	}

	itemTitle := "general inquiry"
	if inq.ItemTitle != nil && *inq.ItemTitle != "" {
		itemTitle = *inq.ItemTitle
	}

	subject := fmt.Sprintf("New inquiry: %s", itemTitle)
	plain := fmt.Sprintf("From %s <%s>.", inq.Name, inq.Email)
	html := fmt.Sprintf(`<p>New inquiry about <strong>%s</strong> from %s &lt;%s&gt;.</p>`, itemTitle, inq.Name, inq.Email)

	if err := s.email.SendEmail(subject, to, plain, html); err != nil {
		log.Printf("inquiry notification email failed: %v", err)
	}
}
