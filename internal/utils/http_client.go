package utils

import (
	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly; the call
// pipeline installs its hooks on it.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client that asks for JSON and never
// retries on its own. Retrying is a caller decision.
//
// Example usage:
//
//	client := utils.NewHTTPClient()
//	resp, err := client.R().Get("https://api.example.com/users")
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &HTTPClient{Client: client}
}
