package timer

import "github.com/pkg/errors"

// ErrNotFound is returned by a Store when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is the persistent storage the countdown writes the remaining time
// to. Implementations live in the storage package.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}
