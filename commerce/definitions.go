package commerce

import "github.com/xy-planning-network/enums"

// Definitions of the storefront.
// Codes match the integers already persisted; never renumber a label.
var (
	UserStatus = enums.MustDefine("user_status", []enums.Label{
		{Name: "active", Code: 0},
		{Name: "inactive", Code: 1},
		{Name: "suspended", Code: 2},
		{Name: "pending_verification", Code: 3},
		{Name: "deleted", Code: 4},
	}, enums.WithDefault("active"))

	UserRole = enums.MustDefine("user_role", []enums.Label{
		{Name: "user", Code: 0},
		{Name: "moderator", Code: 1},
		{Name: "admin", Code: 2},
		{Name: "super_admin", Code: 3},
	}, enums.WithDefault("user"))

	OrderStatus = enums.MustDefine("order_status", []enums.Label{
		{Name: "pending", Code: 0},
		{Name: "processing", Code: 1},
		{Name: "shipped", Code: 2},
		{Name: "delivered", Code: 3},
		{Name: "cancelled", Code: 4},
		{Name: "refunded", Code: 5},
	}, enums.WithDefault("pending"))

	// PaymentMethod is shared by orders and payments.
	PaymentMethod = enums.MustDefine("payment_method", []enums.Label{
		{Name: "credit_card", Code: 0},
		{Name: "debit_card", Code: 1},
		{Name: "paypal", Code: 2},
		{Name: "bank_transfer", Code: 3},
		{Name: "cash_on_delivery", Code: 4},
		{Name: "cryptocurrency", Code: 5},
	})

	ProductCategory = enums.MustDefine("product_category", []enums.Label{
		{Name: "electronics", Code: 0},
		{Name: "clothing", Code: 1},
		{Name: "books", Code: 2},
		{Name: "food", Code: 3},
		{Name: "home_garden", Code: 4},
		{Name: "sports", Code: 5},
		{Name: "toys", Code: 6},
		{Name: "health_beauty", Code: 7},
	})

	TicketPriority = enums.MustDefine("ticket_priority", []enums.Label{
		{Name: "low", Code: 0},
		{Name: "medium", Code: 1},
		{Name: "high", Code: 2},
		{Name: "urgent", Code: 3},
		{Name: "critical", Code: 4},
	}, enums.WithDefault("medium"))

	TicketSeverity = enums.MustDefine("ticket_severity", []enums.Label{
		{Name: "trivial", Code: 0},
		{Name: "minor", Code: 1},
		{Name: "major", Code: 2},
		{Name: "critical", Code: 3},
		{Name: "blocker", Code: 4},
	}, enums.WithDefault("minor"))

	TicketStatus = enums.MustDefine("ticket_status", []enums.Label{
		{Name: "open", Code: 0},
		{Name: "in_progress", Code: 1},
		{Name: "waiting_on_customer", Code: 2},
		{Name: "resolved", Code: 3},
		{Name: "closed", Code: 4},
	}, enums.WithDefault("open"))

	NotificationType = enums.MustDefine("notification_type", []enums.Label{
		{Name: "email", Code: 0},
		{Name: "sms", Code: 1},
		{Name: "push", Code: 2},
		{Name: "in_app", Code: 3},
		{Name: "webhook", Code: 4},
	})

	EmailFrequency = enums.MustDefine("email_frequency", []enums.Label{
		{Name: "instant", Code: 0},
		{Name: "daily", Code: 1},
		{Name: "weekly", Code: 2},
		{Name: "monthly", Code: 3},
	}, enums.WithDefault("instant"))

	PaymentStatus = enums.MustDefine("payment_status", []enums.Label{
		{Name: "pending", Code: 0},
		{Name: "processing", Code: 1},
		{Name: "completed", Code: 2},
		{Name: "failed", Code: 3},
		{Name: "refunded", Code: 4},
		{Name: "partially_refunded", Code: 5},
	}, enums.WithDefault("pending"))

	// ReviewRating codes are the star count, starting at 1.
	ReviewRating = enums.MustDefine("review_rating", []enums.Label{
		{Name: "one_star", Code: 1},
		{Name: "two_stars", Code: 2},
		{Name: "three_stars", Code: 3},
		{Name: "four_stars", Code: 4},
		{Name: "five_stars", Code: 5},
	})

	AuditAction = enums.MustDefine("audit_action", []enums.Label{
		{Name: "create", Code: 0},
		{Name: "update", Code: 1},
		{Name: "delete", Code: 2},
		{Name: "login", Code: 3},
		{Name: "logout", Code: 4},
		{Name: "password_change", Code: 5},
	})

	// ModerationStatus backs the status column Moderated adds to an entity.
	ModerationStatus = enums.MustDefine("moderation_status", []enums.Label{
		{Name: "draft", Code: 0},
		{Name: "pending", Code: 1},
		{Name: "approved", Code: 2},
		{Name: "rejected", Code: 3},
		{Name: "archived", Code: 4},
	}, enums.WithDefault("draft"))
)

// Definitions returns every storefront Definition, for use as known definitions with enums.ParseConfig.
func Definitions() []*enums.Definition {
	return []*enums.Definition{
		UserStatus,
		UserRole,
		OrderStatus,
		PaymentMethod,
		ProductCategory,
		TicketPriority,
		TicketSeverity,
		TicketStatus,
		NotificationType,
		EmailFrequency,
		PaymentStatus,
		ReviewRating,
		AuditAction,
		ModerationStatus,
	}
}
