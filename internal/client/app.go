package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/adapter"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/config"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/crypto"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/logger"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/service"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/store"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/vault"
	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

// ErrCommandFailed is returned by [App.Run] when the command completed but
// reported an error effect. The error has already been shown.
var ErrCommandFailed = errors.New("command failed")

var _ Client = (*App)(nil)

type App struct {
	model     *SessionModel
	presenter *presenter
	in        io.Reader
	build     models.AppBuildInfo
	closeDB   func() error

	logger *logger.Logger
}

// NewApp builds the full client stack from cfg.
func NewApp(ctx context.Context, cfg *config.ClientConfig, build models.AppBuildInfo, log *logger.Logger, in io.Reader, out io.Writer) (*App, error) {
	keys, err := crypto.NewKeyProvider(cfg.Keystore)
	if err != nil {
		return nil, fmt.Errorf("create key provider: %w", err)
	}

	sessionStore, closeDB, err := store.NewSessionStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create session store: %w", err)
	}

	v := vault.New(keys, sessionStore, log)

	api, err := adapter.NewHTTPSessionAPI(cfg.Adapter, v, log)
	if err != nil {
		_ = closeDB()
		return nil, fmt.Errorf("create session api: %w", err)
	}

	services := service.NewClientServices(api, v, log)

	return newApp(services.SessionService, build, log, in, out, closeDB), nil
}

func newApp(sessions service.ClientSessionService, build models.AppBuildInfo, log *logger.Logger, in io.Reader, out io.Writer, closeDB func() error) *App {
	return &App{
		model:     NewSessionModel(sessions, log),
		presenter: newPresenter(out),
		in:        in,
		build:     build,
		closeDB:   closeDB,
		logger:    log,
	}
}

// Run executes one command.
func (a *App) Run(ctx context.Context, args []string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.model.Run(ctx)
	defer a.model.Close()

	return a.runCommand(ctx, args)
}

func (a *App) Close() error {
	if a.closeDB == nil {
		return nil
	}
	return a.closeDB()
}

// do runs action through the model and prints its effects.
func (a *App) do(ctx context.Context, action Action) error {
	effects, err := a.model.Do(ctx, action)
	if err != nil {
		return err
	}

	a.presenter.effects(effects)
	for _, e := range effects {
		if _, failed := e.(ShowError); failed {
			return ErrCommandFailed
		}
	}
	return nil
}
