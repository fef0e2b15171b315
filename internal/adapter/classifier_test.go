package adapter

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

func TestClassifyStatus_Grid(t *testing.T) {
	tests := []struct {
		code int
		want Kind
	}{
		{code: 401, want: KindAuth},
		{code: 409, want: KindConflict},
		{code: 402, want: KindClient},
		{code: 418, want: KindClient},
		{code: 500, want: KindServer},
		{code: 503, want: KindServer},
		{code: 999, want: KindUnknown},
		{code: 400, want: KindClient},
		{code: 404, want: KindClient},
		{code: 499, want: KindClient},
		{code: 599, want: KindServer},
		{code: 302, want: KindUnknown},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.code), func(t *testing.T) {
			err := classifyStatus(tt.code, nil)
			assert.Equal(t, tt.want, err.Kind)
			assert.Equal(t, tt.code, err.Code)
		})
	}
}

func TestClassifyStatus_BodyIsDisplayOnly(t *testing.T) {
	t.Run("envelope message is kept", func(t *testing.T) {
		err := classifyStatus(409, []byte(`{"success":false,"message":"username already exists","data":null}`))
		assert.Equal(t, KindConflict, err.Kind)
		assert.Equal(t, "username already exists", err.Message)
	})

	t.Run("success envelope cannot override 401", func(t *testing.T) {
		err := classifyStatus(401, []byte(`{"success":true,"message":"ok","data":{"id":1}}`))
		assert.Equal(t, KindAuth, err.Kind)
	})

	t.Run("message text cannot change kind", func(t *testing.T) {
		err := classifyStatus(500, []byte(`{"success":false,"message":"unauthorized token expired"}`))
		assert.Equal(t, KindServer, err.Kind)
	})

	t.Run("non json body falls back to status text", func(t *testing.T) {
		err := classifyStatus(503, []byte("<html>bad gateway</html>"))
		assert.Equal(t, "Service Unavailable", err.Message)
	})
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{
			name:   "dns",
			err:    &url.Error{Op: "Get", URL: "http://nowhere.invalid", Err: &net.OpError{Op: "dial", Err: &net.DNSError{Err: "no such host", Name: "nowhere.invalid", IsNotFound: true}}},
			reason: ReasonHostResolution,
		},
		{
			name:   "deadline",
			err:    &url.Error{Op: "Get", URL: "http://x", Err: context.DeadlineExceeded},
			reason: ReasonTimeout,
		},
		{
			name:   "net timeout",
			err:    &url.Error{Op: "Get", URL: "http://x", Err: timeoutErr{}},
			reason: ReasonTimeout,
		},
		{
			name:   "canceled",
			err:    &url.Error{Op: "Get", URL: "http://x", Err: context.Canceled},
			reason: ReasonCanceled,
		},
		{
			name:   "connection refused",
			err:    &url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}},
			reason: ReasonIO,
		},
		{
			name:   "eof",
			err:    io.EOF,
			reason: ReasonIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTransport(tt.err)
			assert.Equal(t, KindNetwork, got.Kind)
			assert.Equal(t, tt.reason, got.Message)
			assert.Zero(t, got.Code)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		kind    Kind
		message string
	}{
		{name: "empty body", body: "", kind: KindNetwork, message: ReasonMalformedPayload},
		{name: "whitespace", body: "  \n", kind: KindNetwork, message: ReasonMalformedPayload},
		{name: "array", body: "[]", kind: KindNetwork, message: ReasonMalformedPayload},
		{name: "not json", body: "ok", kind: KindNetwork, message: ReasonMalformedPayload},
		{name: "truncated", body: `{"success":true,"data":{"id":`, kind: KindNetwork, message: ReasonMalformedPayload},
		{name: "missing success", body: `{"message":"x","data":{"id":1}}`, kind: KindNetwork, message: ReasonMalformedPayload},
		{name: "undecodable data", body: `{"success":true,"data":"a string"}`, kind: KindNetwork, message: ReasonMalformedPayload},
		{name: "business failure", body: `{"success":false,"message":"x"}`, kind: KindAPI, message: "x"},
		{name: "failure with data", body: `{"success":false,"message":"x","data":{"id":1}}`, kind: KindAPI, message: "x"},
		{name: "success with null data", body: `{"success":true,"message":"nothing","data":null}`, kind: KindAPI, message: "nothing"},
		{name: "success without data", body: `{"success":true}`, kind: KindAPI, message: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeEnvelope[models.User]([]byte(tt.body))
			require.Error(t, err)

			var e *Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.message, e.Message)
		})
	}
}

func TestDecodeEnvelope_Success(t *testing.T) {
	body := `{"success":true,"message":"","data":{"id":7,"username":"ayse","email":"a@x.io"}}`

	user, err := decodeEnvelope[models.User]([]byte(body))

	require.NoError(t, err)
	assert.Equal(t, models.User{ID: 7, Username: "ayse", Email: "a@x.io"}, user)
}

func TestDecodeEnvelope_StringPayload(t *testing.T) {
	got, err := decodeEnvelope[string]([]byte(`{"success":true,"message":"deleted","data":"user deleted"}`))

	require.NoError(t, err)
	assert.Equal(t, "user deleted", got)
}
