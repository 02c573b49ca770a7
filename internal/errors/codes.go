package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// CLI commands map these codes onto user-facing hints (e.g. "log in first").

const (
	// ==================== Auth (AUTH_) ====================
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong username/password
	AuthUserExists         = "AUTH_USER_EXISTS"         // signup name conflict
	AuthNotLoggedIn        = "AUTH_NOT_LOGGED_IN"       // operation needs a session
	AuthAdminOnly          = "AUTH_ADMIN_ONLY"          // operation needs the admin role

	// ==================== Precondition (PRECONDITION_) ====================
	PreconditionNoSession = "PRECONDITION_NO_SESSION" // cart mutation without identity
	PreconditionNoStore   = "PRECONDITION_NO_STORE"   // cart mutation without store
	PreconditionDisposed  = "PRECONDITION_DISPOSED"   // component already disposed

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed fields
	ValidationRequired     = "VALIDATION_REQUIRED"      // missing required field

	// ==================== Stock (STOCK_) ====================
	StockExceeded = "STOCK_EXCEEDED" // requested quantity over known stock

	// ==================== Network (NETWORK_) ====================
	NetworkUnavailable = "NETWORK_UNAVAILABLE" // transport failure
	NetworkBadStatus   = "NETWORK_BAD_STATUS"  // non-2xx from the backend
	NetworkBadPayload  = "NETWORK_BAD_PAYLOAD" // undecodable response body

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND" // 404 from the backend
)
