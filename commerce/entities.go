package commerce

import (
	"github.com/xy-planning-network/enums"
	"github.com/xy-planning-network/enums/filter"
)

// Table names double as entity names in the Registry.
const (
	AuditLogs               = "audit_logs"
	NotificationPreferences = "notification_preferences"
	Orders                  = "orders"
	Payments                = "payments"
	Products                = "products"
	Reviews                 = "reviews"
	SupportTickets          = "support_tickets"
	Users                   = "users"
)

// Entities returns the enum columns and scopes of every storefront table.
// Each call returns fresh values the caller may extend before passing them to enums.NewRegistry.
func Entities() []enums.Entity {
	return []enums.Entity{
		{
			Name: Users,
			Fields: []enums.Field{
				{Column: "status", Definition: UserStatus},
				{Column: "role", Definition: UserRole},
			},
			Scopes: []enums.Scope{
				{Name: "verified", Column: "status", Labels: []string{"active"}},
				{Name: "pending", Column: "status", Labels: []string{"pending_verification"}},
				{Name: "admins", Column: "role", Labels: []string{"admin", "super_admin"}},
			},
		},
		{
			Name: Orders,
			Fields: []enums.Field{
				{Column: "status", Definition: OrderStatus},
				{Column: "payment_method", Definition: PaymentMethod, Naming: enums.Prefix("")},
			},
			Scopes: []enums.Scope{
				{Name: "completed", Column: "status", Labels: []string{"delivered", "refunded"}},
				{Name: "in_progress", Column: "status", Labels: []string{"pending", "processing", "shipped"}},
			},
		},
		{
			Name:   Products,
			Fields: []enums.Field{{Column: "category", Definition: ProductCategory}},
			Scopes: []enums.Scope{
				{Name: "available", Filter: ptr(filter.And(filter.Eq("active", true), filter.Gt("stock_quantity", 0)))},
			},
		},
		{
			Name: SupportTickets,
			Fields: []enums.Field{
				{Column: "priority", Definition: TicketPriority, Naming: enums.Prefix("")},
				{Column: "severity", Definition: TicketSeverity, Naming: enums.Prefix("")},
				{Column: "status", Definition: TicketStatus},
			},
			Scopes: []enums.Scope{
				{Name: "unassigned", Column: "assigned_to_id", IsNull: true},
				{Name: "high_priority", Column: "priority", Labels: []string{"high", "urgent", "critical"}},
				{Name: "unresolved", Column: "status", Labels: []string{"resolved", "closed"}, Exclude: true},
			},
		},
		{
			Name:   NotificationPreferences,
			Fields: []enums.Field{{Column: "email_frequency", Definition: EmailFrequency}},
			MultiFields: []enums.MultiField{
				{
					Column:     "enabled_types",
					Definition: NotificationType,
					Naming:     enums.Prefix("enabled_type"),
					Default:    []string{"email", "in_app"},
				},
			},
			Scopes: []enums.Scope{
				{Name: "reachable_instantly", Column: "enabled_types", Labels: []string{"sms", "push"}},
			},
		},
		{
			Name: Payments,
			Fields: []enums.Field{
				{Column: "payment_method", Definition: PaymentMethod},
				{Column: "status", Definition: PaymentStatus, Naming: enums.Prefix("payment")},
			},
			Scopes: []enums.Scope{
				{Name: "successful", Column: "status", Labels: []string{"completed"}},
				{Name: "failed", Column: "status", Labels: []string{"failed"}},
			},
		},
		Moderated(enums.Entity{
			Name:   Reviews,
			Fields: []enums.Field{{Column: "rating", Definition: ReviewRating, Naming: enums.Prefix("")}},
			Scopes: []enums.Scope{
				{Name: "highly_rated", Column: "rating", Labels: []string{"four_stars", "five_stars"}},
				{Name: "verified", Filter: ptr(filter.Eq("verified_purchase", true))},
			},
		}),
		{
			Name:   AuditLogs,
			Fields: []enums.Field{{Column: "action", Definition: AuditAction, Naming: enums.Prefix("")}},
		},
	}
}

// Moderated adds the moderation workflow to e:
// a status column prefixed "status" and the published and pending_review scopes.
func Moderated(e enums.Entity) enums.Entity {
	e.Fields = append(append([]enums.Field{}, e.Fields...), enums.Field{
		Column:     "status",
		Definition: ModerationStatus,
		Naming:     enums.Prefix("status"),
	})

	e.Scopes = append(append([]enums.Scope{}, e.Scopes...),
		enums.Scope{Name: "published", Column: "status", Labels: []string{"approved"}},
		enums.Scope{Name: "pending_review", Column: "status", Labels: []string{"pending"}},
	)

	return e
}

// NewRegistry registers Entities along with extra, which may extend the storefront.
func NewRegistry(extra []enums.Entity, opts ...enums.RegistryOption) (*enums.Registry, error) {
	return enums.NewRegistry(append(Entities(), extra...), opts...)
}

func ptr[T any](v T) *T { return &v }
