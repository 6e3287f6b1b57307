package storage

import (
	"path/filepath"

	"RingTimer/timer"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"
)

// BadgerStore represents a BadgerDB storage instance
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a BadgerDB database in dataDir.
func NewBadgerStore(dataDir string) (*BadgerStore, error) {
	absPath, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get absolute path")
	}

	opts := badger.DefaultOptions(absPath)
	opts.Logger = nil // Disable Badger's internal logger

	return openBadger(opts, absPath)
}

// NewInMemoryBadgerStore opens a BadgerDB database that lives only in memory.
func NewInMemoryBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts, "memory")
}

func openBadger(opts badger.Options, where string) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open BadgerDB")
	}

	log.Infof("BadgerDB opened at %s", where)
	return &BadgerStore{db: db}, nil
}

// Close closes the BadgerDB database
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Set stores a value for a key
func (s *BadgerStore) Set(key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

// Get retrieves a value for a key
func (s *BadgerStore) Get(key string) (string, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			data = append([]byte{}, val...)
			return nil
		})
	})

	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", timer.ErrNotFound
		}
		return "", errors.Wrap(err, "failed to get value")
	}

	return string(data), nil
}

// Delete removes a key from the database
func (s *BadgerStore) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}
