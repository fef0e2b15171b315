package adapter

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/logger"
)

// DefaultAuthPathPrefix is the path prefix of the login, register and
// refresh endpoints.
const DefaultAuthPathPrefix = "/api/auth/"

type authExemptKey struct{}

// Authenticator attaches the stored credential to outgoing requests and
// clears it when the backend rejects it. Requests under the auth prefix pass
// through untouched and never trigger the clear.
type Authenticator struct {
	creds      CredentialStore
	authPrefix string
	logger     *logger.Logger
}

func NewAuthenticator(creds CredentialStore, authPrefix string, logger *logger.Logger) *Authenticator {
	if authPrefix == "" {
		authPrefix = DefaultAuthPathPrefix
	}
	return &Authenticator{creds: creds, authPrefix: authPrefix, logger: logger}
}

// Install registers the request and response hooks on client.
func (a *Authenticator) Install(client *resty.Client) {
	client.OnBeforeRequest(a.beforeRequest)
	client.OnAfterResponse(a.afterResponse)
}

// isAuthPath reports whether rawURL (relative or absolute) targets an auth
// endpoint.
func (a *Authenticator) isAuthPath(rawURL string) bool {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
	}
	return strings.HasPrefix(path, a.authPrefix)
}

func (a *Authenticator) beforeRequest(_ *resty.Client, r *resty.Request) error {
	// user hooks run before the URL is resolved against the base URL
	exempt := a.isAuthPath(r.URL)
	r.SetContext(context.WithValue(r.Context(), authExemptKey{}, exempt))
	if exempt {
		return nil
	}

	cred, ok := a.creds.Get(r.Context())
	if !ok {
		return nil
	}

	r.SetHeader("Authorization", cred.AuthorizationHeader())
	r.SetHeader("Content-Type", "application/json")
	return nil
}

// afterResponse clears the credential on 401 before the response reaches the
// caller.
func (a *Authenticator) afterResponse(_ *resty.Client, resp *resty.Response) error {
	if resp.StatusCode() != http.StatusUnauthorized {
		return nil
	}

	ctx := resp.Request.Context()
	if exempt, _ := ctx.Value(authExemptKey{}).(bool); exempt {
		return nil
	}

	if err := a.creds.Clear(ctx); err != nil {
		a.logger.Err(err).Str("func", "*Authenticator.afterResponse").Msg("failed to clear rejected credential")
		return nil
	}
	a.logger.Info().Str("path", requestPath(resp.Request.URL)).Msg("credential rejected by backend, cleared")
	return nil
}
