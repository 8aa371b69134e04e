package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"bptree/internal/btree"
	"bptree/internal/config"
	"bptree/internal/logger"
)

// Open starts one in-memory tree and points the process's shared log
// file at cfg.LogDir. Unlike the teacher's per-dbname Open, there is
// no on-disk path to open: persistence is out of scope for the core
// engine, so the tree starts empty every time.
func Open(cfg *config.Config) (*Database, error) {
	logPath := filepath.Join(cfg.LogDir, "bptreekv.log")

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return nil, fmt.Errorf("engine: open log file: %w", err)
	}

	log := logger.New(logFile, logger.INFO)
	tree := btree.New()
	eng := NewEngine(tree, log)

	return &Database{engine: eng}, nil
}
