// Package keychain stores the bearer token in OS-level secret storage.
// On macOS it uses the Keychain via security(1); on Linux it uses Secret
// Service via secret-tool(1). Other platforms report unavailable, in
// which case callers fall back to the state file.
package keychain

// Service name used for all logsentinel entries.
const Service = "logsentinel"

// StoreToken saves the bearer token for an account (the login email).
// Returns ErrUnavailable when the platform has no usable secret store.
func StoreToken(account, token string) error {
	return set(Service, account, token)
}

// LoadToken returns the stored token for an account, empty string when
// no entry exists or the secret store is unavailable.
func LoadToken(account string) (string, error) {
	return get(Service, account)
}

// DeleteToken removes the stored token. Idempotent.
func DeleteToken(account string) error {
	return del(Service, account)
}

// Available reports whether the platform secret store is usable.
func Available() bool {
	return available()
}
