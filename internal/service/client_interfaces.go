package service

import (
	"context"

	"github.com/oguzhanozgokce/BootMobileSecure/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// CredentialVault is the encrypted holder of the single live credential.
// It is implemented by [vault.Vault].
type CredentialVault interface {
	// Save replaces the stored credential. An encryption failure leaves the
	// previous credential in place and is returned.
	Save(ctx context.Context, cred models.Credential) error

	// Get returns the stored credential, or false when there is none or it
	// cannot be decrypted.
	Get(ctx context.Context) (models.Credential, bool)

	// Clear removes the stored credential. It is idempotent.
	Clear(ctx context.Context) error

	// IsPresent is consistent with Get.
	IsPresent(ctx context.Context) bool
}

// ClientSessionService owns the credential lifecycle: it is the only
// component that saves a credential, and it clears it when the session
// cannot be recovered. Failed remote calls are returned as [*adapter.Error].
type ClientSessionService interface {
	// Login authenticates with username and password and stores the issued
	// credential before returning. The vault is untouched on failure.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// Register creates an account and stores its first credential.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Refresh exchanges the stored credential for a new one. An Auth failure
	// clears the vault; any other failure leaves the credential as it was.
	Refresh(ctx context.Context) (models.User, error)

	// Logout clears the vault. It never fails; a storage error is logged.
	Logout(ctx context.Context)

	// State reports whether a usable credential is stored.
	State(ctx context.Context) models.SessionState

	// SessionInfo describes the stored credential for display, or false when
	// logged out.
	SessionInfo(ctx context.Context) (models.SessionInfo, bool)

	// CurrentUser fetches the profile of the logged-in user.
	CurrentUser(ctx context.Context) (models.User, error)

	// UserByID fetches any user by id.
	UserByID(ctx context.Context, id int64) (models.User, error)

	// DeleteUser deletes the user with the given id.
	DeleteUser(ctx context.Context, id int64) error
}
