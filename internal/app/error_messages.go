// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing wording of the client.
//
// All Msg* constants are display strings. Nothing in the client branches on
// them; control flow uses [adapter.Kind].
package app

import (
	"errors"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/adapter"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/crypto"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/service"
)

const (
	// MsgNetwork is shown when the backend could not be reached or answered
	// with something that is not an envelope.
	MsgNetwork = "cannot reach the server, check your connection"

	// MsgTimeout is shown when the request timed out.
	MsgTimeout = "the server took too long to respond"

	// MsgSessionExpired is shown on 401; the user has been logged out.
	MsgSessionExpired = "your session has expired, please log in again"

	// MsgConflict is shown on 409, e.g. a taken username or email.
	MsgConflict = "this account already exists"

	// MsgClient is shown on any other 4xx.
	MsgClient = "the request was rejected"

	// MsgServer is shown on 5xx.
	MsgServer = "the server is unavailable, try again later"

	// MsgAPI is shown when the backend reported a failure without a message.
	MsgAPI = "the operation failed"

	// MsgUnknown is shown for anything else.
	MsgUnknown = "something went wrong"

	// MsgKeystore is shown when the credential could not be stored securely.
	MsgKeystore = "could not access the secure key store"

	MsgLoggedOut       = "logged out"
	MsgSessionRefresh  = "session refreshed"
	MsgUserDeleted     = "user deleted"
	MsgWelcomeTemplate = "welcome, %s"
)

// MessageFor renders err for display. A message sent by the backend is
// preferred, except for network failures whose text is a transport reason.
func MessageFor(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, service.ErrSaveCredential) || errors.Is(err, crypto.ErrCrypto) {
		return MsgKeystore
	}

	var e *adapter.Error
	if !errors.As(err, &e) {
		return MsgUnknown
	}

	switch e.Kind {
	case adapter.KindNetwork:
		if e.Message == adapter.ReasonTimeout {
			return MsgTimeout
		}
		return MsgNetwork
	case adapter.KindAuth:
		return MsgSessionExpired
	}

	if e.Message != "" {
		return e.Message
	}

	switch e.Kind {
	case adapter.KindConflict:
		return MsgConflict
	case adapter.KindClient:
		return MsgClient
	case adapter.KindServer:
		return MsgServer
	case adapter.KindAPI:
		return MsgAPI
	default:
		return MsgUnknown
	}
}
