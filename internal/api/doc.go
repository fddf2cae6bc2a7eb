// Package api provides the Bitunix futures REST API client.
//
// Endpoints:
//   - Production: https://fapi.bitunix.com
//
// Every request is signed per the Bitunix scheme: double SHA-256 over
// nonce, timestamp, key id, canonicalized query and body, with a fresh
// nonce per request (see internal/auth).
package api
