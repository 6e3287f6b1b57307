// Package storage provides the persistent stores the countdown writes its
// remaining time to: an in-memory map, the fyne app preferences and a
// badger key-value database.
package storage
