package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const builtinSource = "builtin"

// reloadSettleDelay gives editors time to finish writing before we read
const reloadSettleDelay = 100 * time.Millisecond

// TableCache holds the pattern table currently in use and swaps in a new
// one when the backing file changes. Tables themselves are never mutated.
type TableCache struct {
	sync.RWMutex
	table    *PatternTable
	loadedAt time.Time
	filePath string
	watcher  *fsnotify.Watcher
	logger   *zap.Logger
}

// NewTableCache loads the table from filePath, or the built-in table when
// filePath is empty.
func NewTableCache(filePath string, logger *zap.Logger) (*TableCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tc := &TableCache{
		filePath: filePath,
		logger:   logger,
	}
	if _, err := tc.Reload(); err != nil {
		return nil, err
	}
	return tc, nil
}

// Table returns the table to score against
func (tc *TableCache) Table() *PatternTable {
	tc.RLock()
	defer tc.RUnlock()
	return tc.table
}

// Reload rebuilds the table from its source. On failure the previous
// table stays in place.
func (tc *TableCache) Reload() (*PatternTable, error) {
	var (
		pt  *PatternTable
		err error
	)
	if tc.filePath == "" {
		pt = DefaultPatternTable()
	} else {
		pt, err = loadPatternFile(tc.filePath)
		if err != nil {
			return nil, err
		}
	}

	tc.Lock()
	tc.table = pt
	tc.loadedAt = time.Now()
	tc.Unlock()

	tc.logger.Info("pattern table loaded",
		zap.String("source", tc.source()),
		zap.Int("groups", pt.Len()),
		zap.Int("fallbacks", len(pt.fallbacks)),
	)
	return pt, nil
}

// Info describes the table being served
func (tc *TableCache) Info() TableInfo {
	tc.RLock()
	defer tc.RUnlock()
	return TableInfo{
		Source:    tc.source(),
		LoadedAt:  tc.loadedAt,
		Groups:    tc.table.Len(),
		Triggers:  tc.table.triggerCount(),
		Fallbacks: len(tc.table.fallbacks),
		Watching:  tc.watcher != nil,
	}
}

func (tc *TableCache) source() string {
	if tc.filePath == "" {
		return builtinSource
	}
	return tc.filePath
}

// StartWatching registers a file watcher on the pattern file's directory.
// Directories are watched rather than the file so that editors which
// replace the file on save keep triggering events.
func (tc *TableCache) StartWatching() error {
	if tc.filePath == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir := filepath.Dir(tc.filePath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch patterns directory: %w", err)
	}

	tc.Lock()
	tc.watcher = watcher
	tc.Unlock()

	tc.logger.Info("file watcher initialized", zap.String("dir", dir))
	return nil
}

// Watch reloads the table whenever the pattern file is written, created
// or renamed into place. It returns when ctx is done or the watcher closes.
func (tc *TableCache) Watch(ctx context.Context) {
	tc.RLock()
	watcher := tc.watcher
	tc.RUnlock()
	if watcher == nil {
		return
	}

	target := filepath.Clean(tc.filePath)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(reloadSettleDelay):
			}

			tc.logger.Info("pattern file changed, reloading", zap.String("file", event.Name))
			if _, err := tc.Reload(); err != nil {
				tc.logger.Error("pattern reload failed, keeping previous table", zap.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			tc.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

func (tc *TableCache) Close() {
	tc.Lock()
	defer tc.Unlock()
	if tc.watcher != nil {
		tc.watcher.Close()
		tc.watcher = nil
	}
}

// loadPatternFile reads a JSON or YAML pattern file, chosen by extension
func loadPatternFile(filePath string) (*PatternTable, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pattern file: %w", err)
	}

	pf, err := decodePatternFile(data, filepath.Ext(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern file %s: %w", filePath, err)
	}

	pt, err := NewPatternTable(pf.Groups, pf.Fallbacks, pf.Farewell, pf.Greeting)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern file %s: %w", filePath, err)
	}
	return pt, nil
}

func decodePatternFile(data []byte, ext string) (*PatternFile, error) {
	var pf PatternFile
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &pf); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported pattern file extension %q", ext)
	}
	return &pf, nil
}
