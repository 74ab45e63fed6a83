package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Timeouts
const (
	DefaultRequestTimeout = 10 * time.Second
	VerificationCodeTTL   = 5 * time.Minute
	ExportURLTTL          = 15 * time.Minute
)

// Database pool settings
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Domain limits
const (
	MaxWorkspacesPerUser  = 10
	MaxWorkspaceTitleLen  = 20
	MaxProjectTitleLen    = 20
	ParticipantCodeLength = 4
	VerificationCodeLen   = 6
)

// Cache key domains, combined as "<prefix>::<domain>::<qualifier>"
const (
	CacheDomainUser  = "user"
	CacheDomainEmail = "email"
	CacheDomainChat  = "chat"
)

// ProfileColors is the palette newly registered users are assigned from.
var ProfileColors = []string{
	"#F44336", "#9C27B0", "#3F51B5", "#03A9F4",
	"#009688", "#8BC34A", "#FFC107", "#795548",
}
