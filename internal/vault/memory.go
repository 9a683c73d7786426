package vault

import (
	"sync"

	"github.com/snipstash/snipstash/internal/apperrors"
)

// Memory is an in-process Vault used by tests and environments without a
// keyring daemon. It satisfies the same not-found contract as Keyring.
type Memory struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMemory returns an empty in-memory Vault.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Store(serverURL, secret string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[serverURL] = secret
	return nil
}

func (m *Memory) Retrieve(serverURL string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	secret, ok := m.entries[serverURL]
	if !ok {
		return "", apperrors.New(apperrors.KindCredentialNotFound, "no token stored for "+serverURL)
	}
	return secret, nil
}

func (m *Memory) Delete(serverURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[serverURL]; !ok {
		return apperrors.New(apperrors.KindCredentialNotFound, "no token stored for "+serverURL)
	}
	delete(m.entries, serverURL)
	return nil
}
