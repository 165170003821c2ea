package upscale

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout reports that the tool lock stayed held past the configured wait.
var ErrLockTimeout = errors.New("timed out waiting for tool lock")

// ToolLock serializes tool invocations through an advisory lock on a
// well-known file. Every Acquire opens its own descriptor, so the lock
// excludes goroutines in this process as well as other processes. The kernel
// drops the lock when a holder exits, so a crashed run cannot wedge it.
type ToolLock struct {
	path     string
	interval time.Duration
	timeout  time.Duration
}

// NewToolLock returns a lock on path that re-checks every interval while held
// elsewhere. A zero timeout waits until the context ends.
func NewToolLock(path string, interval, timeout time.Duration) *ToolLock {
	if interval <= 0 {
		interval = time.Second
	}
	return &ToolLock{path: path, interval: interval, timeout: timeout}
}

// Path returns the lock file location.
func (l *ToolLock) Path() string {
	return l.path
}

// Acquire polls until the lock is free, then holds it. The returned func
// releases it.
func (l *ToolLock) Acquire(ctx context.Context) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	waitCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	fl := flock.New(l.path)
	ok, err := fl.TryLockContext(waitCtx, l.interval)
	if ok && err == nil {
		return fl.Unlock, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if waitCtx.Err() != nil {
		return nil, fmt.Errorf("%w after %s", ErrLockTimeout, l.timeout)
	}
	if err == nil {
		err = errors.New("lock not acquired")
	}
	return nil, fmt.Errorf("acquire tool lock %s: %w", l.path, err)
}

// Remove deletes the lock file when nobody holds it. A lock held by another
// live process is left in place. A process that opened the file before the
// unlink keeps locking the old inode while newcomers lock a fresh file, so
// call Remove only at shutdown, after this process's invocations are done.
func (l *ToolLock) Remove() error {
	fl := flock.New(l.path)
	ok, err := fl.TryLock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("probe tool lock: %w", err)
	}
	if !ok {
		return nil
	}
	defer fl.Unlock()
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove tool lock: %w", err)
	}
	return nil
}
