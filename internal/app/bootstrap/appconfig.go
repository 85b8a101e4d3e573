// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: WAFFLE's CoreConfig
// already covers ports, TLS, logging level, CORS, and timeouts.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Token configuration
	TokenSecret     string        // HMAC key for signing access/refresh tokens (>= 32 bytes)
	TokenIssuer     string        // Issuer claim stamped into every token
	AccessTokenTTL  time.Duration // Access token lifetime
	RefreshTokenTTL time.Duration // Refresh token lifetime

	// StrictResourceOwnership limits task and comment mutations to the
	// resource's creator and project owner/admins. Off by default:
	// any project member may mutate, matching the coarse policy.
	StrictResourceOwnership bool
}
