// Package vault stores the API token in the operating system's secure
// credential storage. Tokens are keyed by server URL so exactly one
// credential exists per server, and the secret value never touches the
// config file or the logs.
package vault

import (
	"errors"

	"github.com/zalando/go-keyring"

	"github.com/snipstash/snipstash/internal/apperrors"
)

// service is the fixed identifier under which snipstash entries appear
// in the OS keyring.
const service = "snipstash"

// Vault persists one secret per server URL.
type Vault interface {
	// Store saves the secret for serverURL, overwriting any previous value.
	Store(serverURL, secret string) error
	// Retrieve returns the secret for serverURL. Fails with
	// KindCredentialNotFound when no entry exists.
	Retrieve(serverURL string) (string, error)
	// Delete removes the secret for serverURL. Fails with
	// KindCredentialNotFound when no entry exists.
	Delete(serverURL string) error
}

// Keyring is the Vault backed by the OS keyring (Secret Service on
// Linux, Keychain on macOS, Credential Manager on Windows).
type Keyring struct{}

// NewKeyring returns the OS-backed Vault.
func NewKeyring() *Keyring {
	return &Keyring{}
}

func (k *Keyring) Store(serverURL, secret string) error {
	if err := keyring.Set(service, serverURL, secret); err != nil {
		return apperrors.Wrap(apperrors.KindCredential, "could not store token in keyring", err)
	}
	return nil
}

func (k *Keyring) Retrieve(serverURL string) (string, error) {
	secret, err := keyring.Get(service, serverURL)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", apperrors.New(apperrors.KindCredentialNotFound, "no token stored for "+serverURL)
		}
		return "", apperrors.Wrap(apperrors.KindCredential, "could not read token from keyring", err)
	}
	return secret, nil
}

func (k *Keyring) Delete(serverURL string) error {
	if err := keyring.Delete(service, serverURL); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return apperrors.New(apperrors.KindCredentialNotFound, "no token stored for "+serverURL)
		}
		return apperrors.Wrap(apperrors.KindCredential, "could not delete token from keyring", err)
	}
	return nil
}
