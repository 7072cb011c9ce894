// Package common contains shared constants and sentinel errors used across
// somapoll components.
package common

const (
	// TokenMetadataKey is the durable slot holding the fallback bearer token.
	TokenMetadataKey = "jwt_token"

	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the token in the Authorization header.
	BearerScheme = "Bearer "

	// RequestIDHeaderName correlates client log lines with backend logs.
	RequestIDHeaderName = "X-Request-ID"

	// SessionCookieName is the cookie the backend sets on login.
	SessionCookieName = "jwt"
)
