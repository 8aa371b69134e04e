package btree

import "errors"

var (
	// ErrKeyTooLarge is returned by Insert when key and payload together
	// exceed maxRecordSize (a quarter of a page).
	ErrKeyTooLarge = errors.New("btree: key/payload pair exceeds maximum record size")

	// ErrKeyNotFound is returned by Remove when the key does not exist.
	ErrKeyNotFound = errors.New("btree: key not found")
)
