package models

import "encoding/json"

// Envelope is the uniform wrapper the backend puts around every response
// body: {"success": bool, "message": string, "data": T | null}.
//
// Success is a pointer so that a body missing the field can be told apart
// from an explicit false. Data is kept raw until the envelope has been
// inspected.
type Envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// HasData reports whether the envelope carries a non-null payload.
func (e Envelope) HasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}
