package client

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/adapter"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/apitest"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/config"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/logger"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/mock"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/store"
	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

func newTestApp(t *testing.T, stdin string) (*App, *mock.MockClientSessionService, *bytes.Buffer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	sessions := mock.NewMockClientSessionService(ctrl)
	out := &bytes.Buffer{}

	a := newApp(sessions, models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop(), strings.NewReader(stdin), out, nil)
	return a, sessions, out
}

func TestApp_LoginWithFlags(t *testing.T) {
	a, sessions, out := newTestApp(t, "")
	sessions.EXPECT().Login(gomock.Any(), models.LoginRequest{Username: "ayse", Password: "pw"}).Return(ayse, nil)
	sessions.EXPECT().SessionInfo(gomock.Any()).Return(models.SessionInfo{}, true)

	err := a.Run(context.Background(), []string{"login", "-u", "ayse", "-p", "pw"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "welcome, Ayse Yilmaz")
}

func TestApp_LoginPasswordFromStdin(t *testing.T) {
	a, sessions, _ := newTestApp(t, "from-stdin\n")
	sessions.EXPECT().Login(gomock.Any(), models.LoginRequest{Username: "ayse", Password: "from-stdin"}).Return(ayse, nil)
	sessions.EXPECT().SessionInfo(gomock.Any()).Return(models.SessionInfo{}, true)

	require.NoError(t, a.Run(context.Background(), []string{"login", "--username", "ayse"}))
}

func TestApp_LoginFailurePrintsError(t *testing.T) {
	a, sessions, out := newTestApp(t, "")
	sessions.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, &adapter.Error{Kind: adapter.KindAuth, Code: 401, Message: "invalid login/password"})

	err := a.Run(context.Background(), []string{"login", "-u", "ayse", "-p", "bad"})

	require.ErrorIs(t, err, ErrCommandFailed)
	assert.Contains(t, out.String(), "error:")
	assert.Contains(t, out.String(), "not logged in")
}

func TestApp_Register(t *testing.T) {
	a, sessions, _ := newTestApp(t, "")
	want := models.RegisterRequest{Username: "ayse", Email: "a@x.io", Password: "pw", FirstName: "Ayse", LastName: "Yilmaz"}
	sessions.EXPECT().Register(gomock.Any(), want).Return(ayse, nil)
	sessions.EXPECT().SessionInfo(gomock.Any()).Return(models.SessionInfo{}, true)

	err := a.Run(context.Background(), []string{"register", "-u", "ayse", "-e", "a@x.io", "-p", "pw", "--first", "Ayse", "--last", "Yilmaz"})

	require.NoError(t, err)
}

func TestApp_Status(t *testing.T) {
	a, sessions, out := newTestApp(t, "")
	sessions.EXPECT().State(gomock.Any()).Return(models.StateLoggedIn)
	sessions.EXPECT().SessionInfo(gomock.Any()).
		Return(models.SessionInfo{Scheme: "Bearer", Subject: "ayse", ExpiresAt: time.Now().Add(time.Hour)}, true)

	require.NoError(t, a.Run(context.Background(), []string{"status"}))

	assert.Contains(t, out.String(), "logged in")
	assert.Contains(t, out.String(), "Bearer")
	assert.Contains(t, out.String(), "expires")
}

func TestApp_ProfileAndUser(t *testing.T) {
	a, sessions, out := newTestApp(t, "")
	sessions.EXPECT().UserByID(gomock.Any(), int64(9)).Return(models.User{ID: 9, Username: "zeynep", Email: "z@x.io"}, nil)

	require.NoError(t, a.Run(context.Background(), []string{"user", "9"}))

	assert.Contains(t, out.String(), "zeynep")
	assert.Contains(t, out.String(), "z@x.io")
}

func TestApp_UsageErrors(t *testing.T) {
	tests := [][]string{
		nil,
		{"frobnicate"},
		{"login"},
		{"register", "-u", "ayse"},
		{"user"},
		{"user", "abc"},
		{"delete-user", "0"},
		{"login", "--bogus"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			a, _, _ := newTestApp(t, "")
			assert.ErrorIs(t, a.Run(context.Background(), args), ErrUsage)
		})
	}
}

func TestApp_Version(t *testing.T) {
	a, _, out := newTestApp(t, "")

	require.NoError(t, a.Run(context.Background(), []string{"version"}))

	assert.Contains(t, out.String(), "Build version: 1.0.0")
	assert.Contains(t, out.String(), "Build date: N/A")
}

func TestApp_EndToEnd(t *testing.T) {
	backend := apitest.New(t)
	backend.AddUser(models.User{Username: "ayse", Email: "ayse@example.com"}, "pw")

	cfg := &config.ClientConfig{
		Adapter: config.ClientAdapter{
			HTTPAddress:    backend.URL(),
			RequestTimeout: 5 * time.Second,
			AuthPathPrefix: apitest.AuthPrefix,
		},
		Storage:  config.ClientStorage{DB: config.ClientDB{DSN: t.TempDir() + "/session.db"}},
		Keystore: config.ClientKeystore{Backend: config.KeystoreBackendFile, KeyFile: t.TempDir() + "/key.json", Passphrase: "pass", Alias: "auth_token_key"},
		Log:      config.ClientLog{Level: "info"},
	}

	run := func(args ...string) (string, error) {
		out := &bytes.Buffer{}
		a, err := NewApp(context.Background(), cfg, models.NewAppBuildInfo("", "", ""), logger.Nop(), strings.NewReader(""), out)
		require.NoError(t, err)
		defer a.Close()

		err = a.Run(context.Background(), args)
		return out.String(), err
	}

	out, err := run("status")
	require.NoError(t, err)
	assert.Contains(t, out, "not logged in")

	_, err = run("login", "-u", "ayse", "-p", "pw")
	require.NoError(t, err)

	// a new process finds the session in the vault
	out, err = run("profile")
	require.NoError(t, err)
	assert.Contains(t, out, "ayse@example.com")

	_, err = run("logout")
	require.NoError(t, err)

	_, err = run("profile")
	assert.ErrorIs(t, err, ErrCommandFailed)
}

func TestNewApp_InvalidKeystore(t *testing.T) {
	cfg := &config.ClientConfig{
		Storage:  config.ClientStorage{DB: config.ClientDB{DSN: store.MemoryDSN}},
		Keystore: config.ClientKeystore{Backend: "vault-9000"},
	}

	_, err := NewApp(context.Background(), cfg, models.AppBuildInfo{}, logger.Nop(), nil, &bytes.Buffer{})

	require.Error(t, err)
}
