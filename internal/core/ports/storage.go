package ports

import "context"

// Storage is a string key/value scope owned by one client session, the
// equivalent of a browser's localStorage.
type Storage interface {
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes keys; deleting a missing key is not an error.
	Delete(ctx context.Context, keys ...string) error
}

// StorageProvider opens the Storage scope identified by id (a portal session
// id, a CLI profile).
type StorageProvider interface {
	Open(ctx context.Context, id string) (Storage, error)
}
