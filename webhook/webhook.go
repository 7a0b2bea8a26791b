// Package webhook verifies inbound signed callbacks. A payload is parsed
// only after its HMAC-SHA256 signature checks out, so unverified bytes
// never reach caller code as a typed event.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// signaturePrefix is the fixed algorithm prefix on the signature header.
const signaturePrefix = "sha256="

var (
	// ErrMissingSignature indicates the signature header was absent.
	ErrMissingSignature = errors.New("webhook: missing signature header")
	// ErrMalformedSignature indicates the header does not match the
	// sha256=<hex> format.
	ErrMalformedSignature = errors.New("webhook: malformed signature header")
	// ErrSignatureMismatch indicates the signature did not verify. It is
	// deliberately opaque about which part differed.
	ErrSignatureMismatch = errors.New("webhook: signature mismatch")
)

// Event is the authenticated envelope of an inbound callback.
type Event struct {
	// ID uniquely identifies the event.
	ID string `json:"id"`
	// Type is the event type string (e.g. "job.completed").
	Type string `json:"type"`
	// CreatedAt is the event creation timestamp.
	CreatedAt time.Time `json:"created_at"`
	// Data is the event-type-dependent payload.
	Data json.RawMessage `json:"data"`
}

// DecodeData unmarshals the event payload into v.
func (e *Event) DecodeData(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("webhook: decode event data: %w", err)
	}
	return nil
}

// Verify authenticates a raw callback payload against its signature
// header and parses it into an Event. The header must be
// "sha256=" + hex(HMAC-SHA256(secret, body)); the comparison is
// constant-time. No I/O is performed.
func Verify(body []byte, signatureHeader, secret string) (*Event, error) {
	if signatureHeader == "" {
		return nil, ErrMissingSignature
	}
	if !strings.HasPrefix(signatureHeader, signaturePrefix) {
		return nil, ErrMalformedSignature
	}
	supplied := strings.TrimPrefix(signatureHeader, signaturePrefix)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(supplied), []byte(expected)) {
		return nil, ErrSignatureMismatch
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("webhook: parse event: %w", err)
	}
	return &event, nil
}
