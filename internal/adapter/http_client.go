package adapter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/config"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/logger"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/utils"
)

// TraceIDHeader carries the per-request trace id.
const TraceIDHeader = "X-Trace-ID"

// NewPipelineClient builds the HTTP client every remote call goes through:
// base URL and timeout from cfg, a trace id per request, the authenticator's
// hooks, and request logging. Headers and bodies are never logged.
func NewPipelineClient(cfg config.ClientAdapter, auth *Authenticator, log *logger.Logger) (*utils.HTTPClient, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	client.OnBeforeRequest(setTraceID)
	auth.Install(client.Client)
	client.OnAfterResponse(logResponse(log))
	client.OnError(logTransportError(log))

	return client, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// setTraceID takes the trace id from the request context, or mints one.
func setTraceID(_ *resty.Client, r *resty.Request) error {
	if r.Header.Get(TraceIDHeader) != "" {
		return nil
	}

	traceID, ok := utils.GetTraceIDFromContext(r.Context())
	if !ok {
		traceID = utils.NewTraceID()
	}
	r.SetHeader(TraceIDHeader, traceID)
	return nil
}

func requestPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Path
}

func logResponse(log *logger.Logger) resty.ResponseMiddleware {
	return func(_ *resty.Client, resp *resty.Response) error {
		log.Debug().
			Str("method", resp.Request.Method).
			Str("path", requestPath(resp.Request.URL)).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Str("trace_id", resp.Request.Header.Get(TraceIDHeader)).
			Msg("http call")
		return nil
	}
}

func logTransportError(log *logger.Logger) resty.ErrorHook {
	return func(r *resty.Request, err error) {
		log.Warn().
			Err(err).
			Str("method", r.Method).
			Str("path", requestPath(r.URL)).
			Str("trace_id", r.Header.Get(TraceIDHeader)).
			Msg("http call failed")
	}
}
