package enum

// ── Order status state machine (CHECK constrained in DB) ──

const (
	OrderStatusNew        = "NEW"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// OrderStatuses lists every valid status in display order.
var OrderStatuses = []string{
	OrderStatusNew,
	OrderStatusProcessing,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// StatusFilterAll is the sentinel accepted by list filters meaning "no status filter".
const StatusFilterAll = "all"

// IsValidOrderStatus reports whether s is one of the four order statuses.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusNew, OrderStatusProcessing, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// statusLabels maps stored status values to the Arabic labels shown to
// customers and written to CSV exports. The storefront is Arabic-only.
var statusLabels = map[string]string{
	OrderStatusNew:        "جديد",
	OrderStatusProcessing: "قيد التجهيز",
	OrderStatusDelivered:  "تم التوصيل",
	OrderStatusCancelled:  "ملغي",
}

// StatusLabel returns the Arabic display label for a status,
// or the status itself if it is unknown.
func StatusLabel(s string) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return s
}

// ── Site content types (CHECK constrained in DB) ──

const (
	ContentTypeText    = "text"
	ContentTypeBoolean = "boolean"
	ContentTypeJSON    = "json"
	ContentTypeHTML    = "html"
)

func IsValidContentType(s string) bool {
	switch s {
	case ContentTypeText, ContentTypeBoolean, ContentTypeJSON, ContentTypeHTML:
		return true
	}
	return false
}

// ── Well-known site content keys ──

const (
	ContentKeyBrandName         = "brand_name"
	ContentKeyTagline           = "tagline"
	ContentKeyWhatsAppNumber    = "whatsapp_number"
	ContentKeyShowBenefits      = "show_benefits"
	ContentKeyAdminPasswordHash = "admin_password_hash"
)

// ── Roles ──

// RoleAdmin is the only role: a single shared admin login.
const RoleAdmin = "ADMIN"
