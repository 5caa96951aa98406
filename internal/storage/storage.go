// Package storage defines the durable key-value facade implemented by concrete backends.
//
// Each key holds one independently written record; there is no transaction spanning
// keys. Backends must wrap medium failures in errs.ErrStorageUnavailable so callers
// can distinguish "record absent" from "medium broken".
package storage

// Well-known record keys. Only the owning service writes a given key.
const (
	KeySession  = "user"         // current principal token, written by the session manager
	KeyAccounts = "pendingUsers" // full account directory, written by the directory service
	KeyProducts = "products"     // inventory collection, written by the inventory service
)

// Store is the durable key-value persistence facade.
// Values are opaque serialized records.
type Store interface {
	// Get returns the record stored under key, or errs.ErrNotFound if absent.
	Get(key string) (string, error)
	// Set writes the record under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes the record under key. Removing an absent key is not an error.
	Remove(key string) error
}
