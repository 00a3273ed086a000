package secret

// Store abstracts a secure token store (e.g., OS keyring).
// Tokens are keyed by the backend server URL so multiple index servers can
// hold distinct credentials.
type Store interface {
	GetToken(serverURL string) (token string, found bool, err error)
	SetToken(serverURL, token string) error
	DeleteToken(serverURL string) error
}
