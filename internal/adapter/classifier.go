// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

// classifyTransport maps an error returned before any HTTP status was
// received to a network failure.
func classifyTransport(err error) *Error {
	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case errors.As(err, &dnsErr):
		return newError(KindNetwork, ReasonHostResolution, 0, err)
	case errors.Is(err, context.DeadlineExceeded):
		return newError(KindNetwork, ReasonTimeout, 0, err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return newError(KindNetwork, ReasonTimeout, 0, err)
	case errors.Is(err, context.Canceled):
		return newError(KindNetwork, ReasonCanceled, 0, err)
	default:
		return newError(KindNetwork, ReasonIO, 0, err)
	}
}

// classifyStatus maps a non-2xx status. The body is read only for a display
// message; it cannot change the Kind.
func classifyStatus(code int, body []byte) *Error {
	var kind Kind
	switch {
	case code == http.StatusUnauthorized:
		kind = KindAuth
	case code == http.StatusConflict:
		kind = KindConflict
	case code >= 400 && code <= 499:
		kind = KindClient
	case code >= 500 && code <= 599:
		kind = KindServer
	default:
		kind = KindUnknown
	}

	message := http.StatusText(code)
	var env models.Envelope
	if json.Unmarshal(body, &env) == nil && env.Message != "" {
		message = env.Message
	}

	return newError(kind, message, code, nil)
}

// decodeEnvelope unwraps a 2xx body. success with data yields the data;
// success=false or a null payload is a business failure; anything that is
// not a well-formed envelope is a network failure.
func decodeEnvelope[T any](body []byte) (T, error) {
	var zero T

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return zero, newError(KindNetwork, ReasonMalformedPayload, 0, nil)
	}

	var env models.Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Success == nil {
		return zero, newError(KindNetwork, ReasonMalformedPayload, 0, err)
	}

	if !*env.Success || !env.HasData() {
		return zero, newError(KindAPI, env.Message, 0, nil)
	}

	var value T
	if err := json.Unmarshal(env.Data, &value); err != nil {
		return zero, newError(KindNetwork, ReasonMalformedPayload, 0, err)
	}

	return value, nil
}
