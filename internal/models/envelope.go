package models

import (
	"encoding/json"

	"portalempleos/internal/errcodes"
)

// Envelope wraps every backend response
type Envelope struct {
	Code        errcodes.Code   `json:"code"`
	Description string          `json:"description"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// HasData reports whether the envelope carries a non-null payload
func (e *Envelope) HasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}

// DecodeData unmarshals the payload into v
func (e *Envelope) DecodeData(v any) error {
	if !e.HasData() {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// TokenResponse is the body returned by the token endpoint
type TokenResponse struct {
	Token           string        `json:"token"`
	TokenExpiration string        `json:"token_expiration"`
	Code            errcodes.Code `json:"code"`
	Description     string        `json:"description"`
}
