// Package artifacts owns the lifetime of generated audio files. Each
// artifact is retained until it has been downloaded or its TTL elapses,
// whichever comes first, and everything is released best-effort on
// shutdown. This replaces any fire-and-forget deferred deletion: every
// artifact has exactly one owner with an explicit release path.
package artifacts

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

type entry struct {
	path     string
	data     []byte
	deadline time.Time
}

// Manager is the artifact registry and sweeper.
type Manager struct {
	mu      sync.Mutex
	entries map[string]entry

	dir           string
	ttl           time.Duration
	sweepInterval time.Duration
	logger        *zap.Logger

	done      chan struct{}
	closeOnce sync.Once
}

// NewManager creates the manager, ensures the artifact directory exists,
// removes any orphaned files left behind by a previous run, and starts the
// background sweeper.
func NewManager(dir string, ttl time.Duration, logger *zap.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	m := &Manager{
		entries:       make(map[string]entry),
		dir:           dir,
		ttl:           ttl,
		sweepInterval: ttl / 4,
		logger:        logger,
		done:          make(chan struct{}),
	}
	if m.sweepInterval < time.Second {
		m.sweepInterval = time.Second
	}
	m.removeOrphans()
	go m.sweep()
	return m, nil
}

// Dir returns the artifact directory.
func (m *Manager) Dir() string { return m.dir }

// RegisterFile takes ownership of a produced audio file.
func (m *Manager) RegisterFile(id, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = entry{path: path, deadline: time.Now().Add(m.ttl)}
}

// RegisterData takes ownership of an inline audio artifact that could not
// be persisted.
func (m *Manager) RegisterData(id string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = entry{data: data, deadline: time.Now().Add(m.ttl)}
}

// Resolve looks up an artifact by id. It returns the file path for
// persisted artifacts or the raw bytes for inline ones.
func (m *Manager) Resolve(id string) (path string, data []byte, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return "", nil, false
	}
	return e.path, e.data, true
}

// Release marks an artifact as downloaded and frees it. Download completes
// the retention window.
func (m *Manager) Release(id string) {
	m.mu.Lock()
	e, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()
	if ok && e.path != "" {
		if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
			m.logger.Warn("Failed to remove downloaded artifact",
				zap.String("path", e.path),
				zap.Error(err))
		}
	}
}

// Close stops the sweeper and releases every remaining artifact.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		m.mu.Lock()
		remaining := m.entries
		m.entries = make(map[string]entry)
		m.mu.Unlock()
		for _, e := range remaining {
			if e.path != "" {
				os.Remove(e.path)
			}
		}
	})
}

func (m *Manager) sweep() {
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.expire(now)
		}
	}
}

func (m *Manager) expire(now time.Time) {
	m.mu.Lock()
	var expired []entry
	for id, e := range m.entries {
		if now.After(e.deadline) {
			expired = append(expired, e)
			delete(m.entries, id)
		}
	}
	m.mu.Unlock()
	for _, e := range expired {
		if e.path != "" {
			if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
				m.logger.Warn("Failed to remove expired artifact",
					zap.String("path", e.path),
					zap.Error(err))
				continue
			}
		}
		m.logger.Info("Expired audio artifact released", zap.String("path", e.path))
	}
}

// removeOrphans clears files in the artifact directory that no live entry
// owns, which only happens after an unclean shutdown.
func (m *Manager) removeOrphans() {
	files, err := os.ReadDir(m.dir)
	if err != nil {
		return
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		path := filepath.Join(m.dir, f.Name())
		if err := os.Remove(path); err == nil {
			m.logger.Info("Cleaned up orphaned artifact", zap.String("path", path))
		}
	}
}
