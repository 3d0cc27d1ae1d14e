package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"ecogenius/internal/logging"
)

// ErrAlreadyRunning is returned when another server holds the lock.
var ErrAlreadyRunning = errors.New("another ecogenius server is already running")

type instanceLock struct {
	path string
	lock *flock.Flock
}

func acquireLock(path string) (*instanceLock, error) {
	if path == "" {
		return &instanceLock{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrAlreadyRunning, path)
	}
	return &instanceLock{path: path, lock: lock}, nil
}

func (l *instanceLock) release(logger *slog.Logger) {
	if l == nil || l.lock == nil {
		return
	}
	if err := l.lock.Unlock(); err != nil {
		logger.Warn("failed to release server lock", logging.String("lock", l.path), logging.Error(err))
	}
}
