package engine

import (
	"errors"
	"fmt"

	"bptree/internal/btree"
	"bptree/internal/logger"
)

// ErrRecordTooLarge is returned when key and value together exceed the
// core engine's maximum record size (a quarter of a page). The core
// engine reports this as btree.ErrKeyTooLarge; Set translates it into
// this facade-level caller error.
var ErrRecordTooLarge = errors.New("engine: key and value together exceed the maximum record size")

// ErrNotFound is returned by Get and Delete when key has no value.
var ErrNotFound = errors.New("engine: key not found")

// Engine adapts the core btree.Tree's []byte-keyed API to the string
// keys the CLI and server layers work with.
type Engine struct {
	tree *btree.Tree
	log  *logger.Logger
}

func NewEngine(tree *btree.Tree, log *logger.Logger) *Engine {
	return &Engine{tree: tree, log: log}
}

func (e *Engine) Set(key string, value []byte) error {
	if err := e.tree.Insert([]byte(key), value); err != nil {
		if errors.Is(err, btree.ErrKeyTooLarge) {
			e.log.Warnf("rejected oversized record for key %q", key)
			return ErrRecordTooLarge
		}
		return fmt.Errorf("engine: set %q: %w", key, err)
	}
	return nil
}

func (e *Engine) Get(key string) ([]byte, error) {
	val, found := e.tree.Lookup([]byte(key))
	if !found {
		return nil, ErrNotFound
	}
	return val, nil
}

func (e *Engine) Delete(key string) error {
	if err := e.tree.Remove([]byte(key)); err != nil {
		if errors.Is(err, btree.ErrKeyNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("engine: delete %q: %w", key, err)
	}
	return nil
}
