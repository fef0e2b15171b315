package service

import (
	"github.com/oguzhanozgokce/BootMobileSecure/internal/adapter"
	"github.com/oguzhanozgokce/BootMobileSecure/internal/logger"
)

type ClientServices struct {
	SessionService ClientSessionService
}

func NewClientServices(api adapter.SessionAPI, vault CredentialVault, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		SessionService: NewClientSessionService(api, vault, logger),
	}
}
