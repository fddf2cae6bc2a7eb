// Package auth provides Bitunix API authentication using double SHA-256 signatures.
package auth

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// ErrMalformedBody is returned when a request body is not valid JSON.
var ErrMalformedBody = errors.New("request body is not valid JSON")

// Credentials holds the API key pair used to sign requests.
// The secret never leaves this package and must never be logged.
type Credentials struct {
	APIKey    string // Public key id, sent in the api-key header
	SecretKey string // Shared secret, bound into the second hash stage only
}

// NewCredentials validates and wraps an API key pair.
func NewCredentials(apiKey, secretKey string) (*Credentials, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if secretKey == "" {
		return nil, fmt.Errorf("secret key is required")
	}
	return &Credentials{APIKey: apiKey, SecretKey: secretKey}, nil
}

// Nonce returns a fresh 16-byte cryptographically random token, hex encoded.
// One nonce per request; never reuse.
func Nonce() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("auth: read random: %v", err))
	}
	return hex.EncodeToString(b[:])
}

// Sign computes the request signature.
//
// Message format: nonce + timestamp + api_key + canonical_query + canonical_body.
// The message is hashed with SHA-256, the hex digest is concatenated with the
// secret key, and that concatenation is hashed again. Only the second stage
// sees the secret, so the server can verify the first-stage digest without the
// secret ever being transmitted.
func (c *Credentials) Sign(nonce, timestamp string, query map[string]string, body []byte) (string, error) {
	canonicalBody, err := canonicalizeBody(body)
	if err != nil {
		return "", err
	}

	message := nonce + timestamp + c.APIKey + canonicalizeQuery(query) + canonicalBody

	digest := sha256.Sum256([]byte(message))
	signInput := hex.EncodeToString(digest[:]) + c.SecretKey
	sign := sha256.Sum256([]byte(signInput))

	return hex.EncodeToString(sign[:]), nil
}

// AuthHeaders generates the authentication headers for one request, using a
// fresh nonce and the current wall clock.
func (c *Credentials) AuthHeaders(query map[string]string, body []byte) (map[string]string, error) {
	nonce := Nonce()
	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)

	signature, err := c.Sign(nonce, timestamp, query, body)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"api-key":   c.APIKey,
		"timestamp": timestamp,
		"nonce":     nonce,
		"sign":      signature,
	}, nil
}

// canonicalizeQuery sorts keys in ascending byte order and concatenates
// key+value pairs with no separators, so client and server hash identical
// bytes regardless of parameter ordering.
func canonicalizeQuery(query map[string]string) string {
	if len(query) == 0 {
		return ""
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		buf.WriteString(k)
		buf.WriteString(query[k])
	}
	return buf.String()
}

// canonicalizeBody re-serializes the body as compact JSON with no
// insignificant whitespace.
func canonicalizeBody(body []byte) (string, error) {
	if len(body) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return buf.String(), nil
}
