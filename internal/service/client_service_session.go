// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/oguzhanozgokce/BootMobileSecure/internal/adapter"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/logger"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/utils"
	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

type clientSessionService struct {
	api    adapter.SessionAPI
	vault  CredentialVault
	logger *logger.Logger
}

func NewClientSessionService(api adapter.SessionAPI, vault CredentialVault, logger *logger.Logger) ClientSessionService {
	return &clientSessionService{api: api, vault: vault, logger: logger}
}

func (s *clientSessionService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return models.User{}, err
	}

	return s.establish(ctx, resp)
}

func (s *clientSessionService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return models.User{}, err
	}

	return s.establish(ctx, resp)
}

func (s *clientSessionService) Refresh(ctx context.Context) (models.User, error) {
	cred, ok := s.vault.Get(ctx)
	if !ok {
		return models.User{}, &adapter.Error{Kind: adapter.KindAuth, Message: msgNoStoredCredential}
	}

	resp, err := s.api.Refresh(ctx, cred)
	if err != nil {
		// auth endpoints are exempt from the authenticator's clear
		if adapter.KindOf(err) == adapter.KindAuth {
			s.clear(ctx, "*clientSessionService.Refresh")
		}
		return models.User{}, err
	}

	return s.establish(ctx, resp)
}

func (s *clientSessionService) Logout(ctx context.Context) {
	s.clear(ctx, "*clientSessionService.Logout")
}

func (s *clientSessionService) State(ctx context.Context) models.SessionState {
	if s.vault.IsPresent(ctx) {
		return models.StateLoggedIn
	}
	return models.StateLoggedOut
}

func (s *clientSessionService) SessionInfo(ctx context.Context) (models.SessionInfo, bool) {
	cred, ok := s.vault.Get(ctx)
	if !ok {
		return models.SessionInfo{}, false
	}

	info := models.SessionInfo{Scheme: cred.Scheme}
	if claims, err := utils.ParseCredentialClaims(cred.Secret); err == nil {
		info.Subject = claims.Subject
		info.ExpiresAt = claims.ExpiresAt
	}

	return info, true
}

func (s *clientSessionService) CurrentUser(ctx context.Context) (models.User, error) {
	return s.api.CurrentUser(ctx)
}

func (s *clientSessionService) UserByID(ctx context.Context, id int64) (models.User, error) {
	return s.api.UserByID(ctx, id)
}

func (s *clientSessionService) DeleteUser(ctx context.Context, id int64) error {
	return s.api.DeleteUser(ctx, id)
}

// establish stores the credential of a successful auth response.
func (s *clientSessionService) establish(ctx context.Context, resp models.AuthResponse) (models.User, error) {
	cred := resp.Credential()
	if cred.IsZero() {
		return models.User{}, &adapter.Error{Kind: adapter.KindAPI, Message: msgNoCredentialInResponse}
	}

	if err := s.vault.Save(ctx, cred); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrSaveCredential, err)
	}

	s.logger.Info().Int64("user_id", resp.User.ID).Msg("session established")
	return resp.User, nil
}

func (s *clientSessionService) clear(ctx context.Context, fn string) {
	if err := s.vault.Clear(ctx); err != nil {
		s.logger.Err(err).Str("func", fn).Msg("failed to clear credential")
		return
	}
	s.logger.Info().Msg("session cleared")
}
