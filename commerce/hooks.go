package commerce

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xy-planning-network/enums"
	"gorm.io/gorm"
)

const (
	orderNumberPrefix  = "ORD-"
	ticketNumberPrefix = "TICKET-"
)

// NewOrderNumber returns ORD- followed by 16 random upper case hex characters.
func NewOrderNumber() (string, error) { return randomNumber(orderNumberPrefix, 8) }

// NewTicketNumber returns TICKET- followed by 12 random upper case hex characters.
func NewTicketNumber() (string, error) { return randomNumber(ticketNumberPrefix, 6) }

func randomNumber(prefix string, n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%w: %s", enums.ErrUnexpected, err)
	}

	return prefix + strings.ToUpper(hex.EncodeToString(b)), nil
}

// BeforeCreate assigns an order number unless one is already set.
func (o *Order) BeforeCreate(*gorm.DB) (err error) {
	if o.OrderNumber != "" {
		return nil
	}

	o.OrderNumber, err = NewOrderNumber()
	return err
}

// BeforeCreate assigns a ticket number unless one is already set.
func (t *SupportTicket) BeforeCreate(*gorm.DB) (err error) {
	if t.TicketNumber != "" {
		return nil
	}

	t.TicketNumber, err = NewTicketNumber()
	return err
}

// BeforeCreate assigns a request ID unless one is already set.
func (a *AuditLog) BeforeCreate(*gorm.DB) error {
	if a.RequestID == "" {
		a.RequestID = uuid.NewString()
	}

	return nil
}
