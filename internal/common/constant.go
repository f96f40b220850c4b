// Package common contains shared constants and sentinel errors used across
// DocVault components.
package common

// AuthorizationHeaderName is the HTTP header that carries the access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the optional scheme prefix stripped from the
// Authorization header before token validation.
const BearerPrefix = "Bearer "
