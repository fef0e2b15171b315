package apitest

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

func TestBackend_VerifyIssuedToken(t *testing.T) {
	b := New(t)
	b.AddUser(models.User{Username: "ayse"}, "pw")
	token := b.IssueToken("ayse")

	sub, err := b.verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "ayse", sub)

	_, err = b.verify("")
	assert.ErrorIs(t, err, errEmptyAuthorizationHeader)

	_, err = b.verify("Basic " + token)
	assert.ErrorIs(t, err, errInvalidAuthorizationHeader)

	b.Revoke(token)
	_, err = b.verify("Bearer " + token)
	assert.ErrorIs(t, err, errTokenRevoked)
}

func TestBackend_OverrideAndReset(t *testing.T) {
	b := New(t)
	b.Override(http.MethodPost, LoginPath, Response{Status: http.StatusTeapot, Body: `{"success":false}`})

	resp, err := http.Post(b.URL()+LoginPath, "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	req, ok := b.LastRequest(LoginPath)
	require.True(t, ok)
	assert.Equal(t, http.MethodPost, req.Method)

	b.Reset()
	assert.Empty(t, b.Requests())

	resp, err = http.Post(b.URL()+LoginPath, "application/json", strings.NewReader(`{"username":"x","password":"y"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
