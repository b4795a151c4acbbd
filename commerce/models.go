package commerce

import (
	"time"

	"github.com/lib/pq"
	"github.com/xy-planning-network/enums"
	"gorm.io/datatypes"
)

// A Model is the essential data points for primary ID-based models,
// indicating when a record was created and last updated.
type Model struct {
	ID        uint      `db:"id" json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Exists asserts whether the Model has been persisted.
func (m Model) Exists() bool { return !m.CreatedAt.IsZero() }

// A User is a storefront account.
type User struct {
	Model
	Email        string     `db:"email" json:"email" validate:"required,email"`
	Username     string     `db:"username" json:"username" validate:"required"`
	Status       int        `db:"status" json:"status" validate:"code=user_status"`
	Role         int        `db:"role" json:"role" validate:"code=user_role"`
	FirstName    string     `db:"first_name" json:"firstName"`
	LastName     string     `db:"last_name" json:"lastName"`
	LastSignInAt *time.Time `db:"last_sign_in_at" json:"lastSignInAt"`
	SignInCount  int        `db:"sign_in_count" json:"signInCount"`
}

// A Product is an item for sale.
type Product struct {
	Model
	Name          string         `db:"name" json:"name" validate:"required"`
	Description   string         `db:"description" json:"description"`
	Price         float64        `db:"price" json:"price" validate:"gt=0"`
	Category      int            `db:"category" json:"category" validate:"code=product_category"`
	StockQuantity int            `db:"stock_quantity" json:"stockQuantity"`
	SKU           string         `db:"sku" json:"sku" gorm:"column:sku" validate:"required"`
	Active        bool           `db:"active" json:"active"`
	Attributes    datatypes.JSON `db:"attributes" json:"attributes"`
}

// An Order is a purchase by a User.
type Order struct {
	Model
	UserID         uint           `db:"user_id" json:"userId"`
	OrderNumber    string         `db:"order_number" json:"orderNumber"`
	Status         int            `db:"status" json:"status" validate:"code=order_status"`
	PaymentMethod  int            `db:"payment_method" json:"paymentMethod" validate:"code=payment_method"`
	Subtotal       float64        `db:"subtotal" json:"subtotal"`
	TaxAmount      float64        `db:"tax_amount" json:"taxAmount"`
	ShippingAmount float64        `db:"shipping_amount" json:"shippingAmount"`
	TotalAmount    float64        `db:"total_amount" json:"totalAmount" validate:"gt=0"`
	ShippedAt      *time.Time     `db:"shipped_at" json:"shippedAt"`
	DeliveredAt    *time.Time     `db:"delivered_at" json:"deliveredAt"`
	CancelledAt    *time.Time     `db:"cancelled_at" json:"cancelledAt"`
	Metadata       datatypes.JSON `db:"metadata" json:"metadata"`
}

// A SupportTicket is a request for help, optionally assigned to a staff User.
type SupportTicket struct {
	Model
	UserID          uint           `db:"user_id" json:"userId"`
	TicketNumber    string         `db:"ticket_number" json:"ticketNumber"`
	Title           string         `db:"title" json:"title" validate:"required"`
	Description     string         `db:"description" json:"description" validate:"required"`
	Priority        int            `db:"priority" json:"priority" validate:"code=ticket_priority"`
	Severity        int            `db:"severity" json:"severity" validate:"code=ticket_severity"`
	Status          int            `db:"status" json:"status" validate:"code=ticket_status"`
	AssignedToID    *uint          `db:"assigned_to_id" json:"assignedToId"`
	ResolvedAt      *time.Time     `db:"resolved_at" json:"resolvedAt"`
	ResolutionNotes string         `db:"resolution_notes" json:"resolutionNotes"`
	Tags            datatypes.JSON `db:"tags" json:"tags"`
}

// A NotificationPreference records how a User wants to be reached.
type NotificationPreference struct {
	Model
	UserID          uint          `db:"user_id" json:"userId"`
	EnabledTypes    pq.Int64Array `db:"enabled_types" json:"enabledTypes" gorm:"type:integer[]" validate:"code=notification_type"`
	EmailFrequency  int           `db:"email_frequency" json:"emailFrequency" validate:"code=email_frequency"`
	QuietDays       pq.Int64Array `db:"quiet_days" json:"quietDays" gorm:"type:integer[]"`
	MarketingEmails bool          `db:"marketing_emails" json:"marketingEmails"`
	ProductUpdates  bool          `db:"product_updates" json:"productUpdates"`
	Newsletter      bool          `db:"newsletter" json:"newsletter"`
}

// A Payment settles an Order.
type Payment struct {
	Model
	OrderID         uint           `db:"order_id" json:"orderId"`
	Amount          float64        `db:"amount" json:"amount" validate:"gt=0"`
	PaymentMethod   int            `db:"payment_method" json:"paymentMethod" validate:"code=payment_method"`
	Status          int            `db:"status" json:"status" validate:"code=payment_status"`
	TransactionID   *string        `db:"transaction_id" json:"transactionId"`
	GatewayResponse string         `db:"gateway_response" json:"gatewayResponse"`
	GatewayData     datatypes.JSON `db:"gateway_data" json:"gatewayData"`
	ProcessedAt     *time.Time     `db:"processed_at" json:"processedAt"`
}

// A Review is a User's rating of a Product, subject to moderation.
type Review struct {
	Model
	ProductID        uint           `db:"product_id" json:"productId"`
	UserID           uint           `db:"user_id" json:"userId"`
	Rating           int            `db:"rating" json:"rating" validate:"code=review_rating"`
	Status           int            `db:"status" json:"status" validate:"code=moderation_status"`
	Title            string         `db:"title" json:"title"`
	Comment          string         `db:"comment" json:"comment"`
	VerifiedPurchase bool           `db:"verified_purchase" json:"verifiedPurchase"`
	HelpfulCount     int            `db:"helpful_count" json:"helpfulCount"`
	Images           datatypes.JSON `db:"images" json:"images"`
}

// An AuditLog records an action taken on any model.
//
// RequestID correlates every AuditLog written while serving one request.
type AuditLog struct {
	ID            uint           `db:"id" json:"id" gorm:"primaryKey"`
	AuditableType string         `db:"auditable_type" json:"auditableType" validate:"required"`
	AuditableID   uint           `db:"auditable_id" json:"auditableId"`
	Action        int            `db:"action" json:"action" validate:"code=audit_action"`
	UserID        *uint          `db:"user_id" json:"userId"`
	RequestID     string         `db:"request_id" json:"requestId"`
	Changes       datatypes.JSON `db:"changes" json:"changes"`
	UserAgent     string         `db:"user_agent" json:"userAgent"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
}

// Models maps each entity name to a new, empty model for it.
func Models() map[string]any {
	return map[string]any{
		AuditLogs:               new(AuditLog),
		NotificationPreferences: new(NotificationPreference),
		Orders:                  new(Order),
		Payments:                new(Payment),
		Products:                new(Product),
		Reviews:                 new(Review),
		SupportTickets:          new(SupportTicket),
		Users:                   new(User),
	}
}

// Init writes the defaults registered for entity into model.
func Init(reg *enums.Registry, entity string, model any) error {
	rec, err := enums.Struct(model)
	if err != nil {
		return err
	}

	return reg.Init(entity, rec)
}
