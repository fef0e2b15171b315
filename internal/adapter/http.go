package adapter

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/config"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/logger"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/utils"
	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

const (
	usersPath   = "/api/users/"
	profilePath = usersPath + "profile"
	userPath    = usersPath + "{id}"
)

type httpSessionAPI struct {
	client *utils.HTTPClient

	loginPath    string
	registerPath string
	refreshPath  string

	logger *logger.Logger
}

// NewHTTPSessionAPI constructs the REST implementation of [SessionAPI]. The
// Authenticator is installed on its client with creds as the credential
// source.
func NewHTTPSessionAPI(cfg config.ClientAdapter, creds CredentialStore, log *logger.Logger) (SessionAPI, error) {
	auth := NewAuthenticator(creds, cfg.AuthPathPrefix, log)

	client, err := NewPipelineClient(cfg, auth, log)
	if err != nil {
		return nil, err
	}

	return &httpSessionAPI{
		client:       client,
		loginPath:    auth.authPrefix + "login",
		registerPath: auth.authPrefix + "register",
		refreshPath:  auth.authPrefix + "refresh",
		logger:       log,
	}, nil
}

func (h *httpSessionAPI) jsonRequest(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
}

// Login implements [SessionAPI]. POST {auth prefix}login.
func (h *httpSessionAPI) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	return Call[models.AuthResponse](ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.jsonRequest(ctx).SetBody(req).Post(h.loginPath)
	})
}

// Register implements [SessionAPI]. POST {auth prefix}register.
func (h *httpSessionAPI) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	return Call[models.AuthResponse](ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.jsonRequest(ctx).SetBody(req).Post(h.registerPath)
	})
}

// Refresh implements [SessionAPI]. POST {auth prefix}refresh with cred in the
// Authorization header.
func (h *httpSessionAPI) Refresh(ctx context.Context, cred models.Credential) (models.AuthResponse, error) {
	return Call[models.AuthResponse](ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.jsonRequest(ctx).
			SetHeader("Authorization", cred.AuthorizationHeader()).
			Post(h.refreshPath)
	})
}

// CurrentUser implements [SessionAPI]. GET /api/users/profile.
func (h *httpSessionAPI) CurrentUser(ctx context.Context) (models.User, error) {
	return Call[models.User](ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.client.R().SetContext(ctx).Get(profilePath)
	})
}

// UserByID implements [SessionAPI]. GET /api/users/{id}.
func (h *httpSessionAPI) UserByID(ctx context.Context, id int64) (models.User, error) {
	return Call[models.User](ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetPathParam("id", strconv.FormatInt(id, 10)).
			Get(userPath)
	})
}

// DeleteUser implements [SessionAPI]. DELETE /api/users/{id}; the backend
// answers with a confirmation string.
func (h *httpSessionAPI) DeleteUser(ctx context.Context, id int64) error {
	_, err := Call[string](ctx, func(ctx context.Context) (*resty.Response, error) {
		return h.client.R().
			SetContext(ctx).
			SetPathParam("id", strconv.FormatInt(id, 10)).
			Delete(userPath)
	})
	return err
}
