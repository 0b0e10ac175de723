// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Advisors
	KeyAdvisorNotFound  = "asesor.not_found"
	KeyAdvisorAmbiguous = "asesor.ambiguous"
	KeyAdvisorCreated   = "asesor.created"
	KeyAdvisorUpdated   = "asesor.updated"
	KeyAdvisorDeleted   = "asesor.deleted"
	KeyAdvisorRetired   = "asesor.retired"
	KeySlugConflict     = "asesor.slug_conflict"

	// Motos
	KeyMotoNotFound = "moto.not_found"
	KeyMotoCreated  = "moto.created"
	KeyMotoUpdated  = "moto.updated"
	KeyMotoDeleted  = "moto.deleted"

	// Pricing
	KeyPriceUnavailable = "precio.unavailable"

	// Chat
	KeyChatSent          = "chat.sent"
	KeyChatNotConfigured = "chat.not_configured"

	// Admin / upstream
	KeyAdminKeyRequired   = "admin.key_required"
	KeyUpstreamUnavailable = "upstream.unavailable"
	KeyCacheInvalidated   = "admin.cache_invalidated"
)
