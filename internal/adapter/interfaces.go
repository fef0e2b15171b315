// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client's call pipeline to the backend's JSON REST
// API.
//
// Every remote operation goes through [Call], which converts transport
// errors, HTTP statuses and the {success, message, data} envelope into a
// value or an [*Error] carrying a [Kind]. The [Authenticator] hooks into the
// HTTP client: it attaches the stored credential to non-auth requests and
// clears it when the backend answers 401.
package adapter

import (
	"context"

	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_api_mock.go -package=mock

// SessionAPI is the backend surface used by the session service. Every
// method returns either a value or an [*Error].
type SessionAPI interface {
	// Login posts the user's credentials to the login endpoint. The request
	// never carries an Authorization header.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Register creates an account and returns its first credential.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Refresh exchanges cred for a new credential. cred is attached
	// explicitly because auth endpoints are exempt from the Authenticator.
	Refresh(ctx context.Context, cred models.Credential) (models.AuthResponse, error)

	// CurrentUser returns the profile of the authenticated user.
	CurrentUser(ctx context.Context) (models.User, error)

	// UserByID returns the user with the given id.
	UserByID(ctx context.Context, id int64) (models.User, error)

	// DeleteUser deletes the user with the given id.
	DeleteUser(ctx context.Context, id int64) error
}

// CredentialStore is the part of the vault the Authenticator needs.
type CredentialStore interface {
	Get(ctx context.Context) (models.Credential, bool)
	Clear(ctx context.Context) error
}
