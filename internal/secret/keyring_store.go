package secret

import (
	"github.com/99designs/keyring"
)

const serviceName = "dxview.api"

type keyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore tries to open the OS keyring via 99designs/keyring.
// If it fails, returns an error so callers can fall back to the environment.
func NewKeyringStore() (Store, error) {
	r, err := keyring.Open(keyring.Config{ServiceName: serviceName})
	if err != nil {
		return nil, err
	}
	return &keyringStore{ring: r}, nil
}

func (s *keyringStore) GetToken(serverURL string) (string, bool, error) {
	item, err := s.ring.Get(serverURL)
	if err != nil {
		if err == keyring.ErrKeyNotFound {
			return "", false, nil
		}
		return "", false, err
	}
	return string(item.Data), true, nil
}

func (s *keyringStore) SetToken(serverURL, token string) error {
	return s.ring.Set(keyring.Item{
		Key:   serverURL,
		Data:  []byte(token),
		Label: serviceName,
	})
}

func (s *keyringStore) DeleteToken(serverURL string) error {
	return s.ring.Remove(serverURL)
}
