// Package client contains the transport layer between the somapoll client
// and the backend.
//
// # Overview
//
// The package provides:
//  1. The backend contract (see the Client interface): current-user, login,
//     signup with its verify/cleanup companions, availability check, logout,
//     OTP verification and the read-only candidate/party listings.
//  2. A JSON-over-HTTP implementation (see HTTPClient) that keeps a cookie
//     jar, attaches the stored bearer token on every request, tags requests
//     with an X-Request-ID and validates responses at the boundary.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are classified so callers can react precisely:
//   - *TransportError: no HTTP response; matches ErrUnavailable.
//   - *APIError: non-2xx status with whatever message the body carried;
//     401/403 match ErrUnauthorized.
//   - *SemanticError: 2xx whose body lacks the field that signals success
//     (for example a login response without a username); matches ErrSemantic.
//
// All operations accept context.Context and honour cancellation.
package client
