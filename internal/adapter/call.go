package adapter

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// RemoteCall performs one HTTP request. It is handed the caller's context.
type RemoteCall func(ctx context.Context) (*resty.Response, error)

// Call runs fn and turns its outcome into exactly one of: a decoded value, or
// an *Error. It is the only place transport errors are converted.
//
// The HTTP status is inspected first; the envelope is read only for 2xx.
func Call[T any](ctx context.Context, fn RemoteCall) (T, error) {
	var zero T

	resp, err := fn(ctx)
	if err != nil {
		return zero, classifyTransport(err)
	}
	if resp == nil || resp.RawResponse == nil {
		return zero, newError(KindNetwork, ReasonMalformedPayload, 0, nil)
	}

	code := resp.StatusCode()
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		return zero, classifyStatus(code, resp.Body())
	}

	return decodeEnvelope[T](resp.Body())
}
