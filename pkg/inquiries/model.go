package inquiries

import "time"

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusClosed    = "closed"
)

type Inquiry struct {
	ID        string    `json:"id"`
	ItemID    *string   `json:"item_id,omitempty"`
	ItemTitle *string   `json:"item_title,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Message   *string   `json:"message,omitempty"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusContacted, StatusClosed:
		return true
	default:
		return false
	}
}
