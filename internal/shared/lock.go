package shared

import (
	"fmt"

	"github.com/gofrs/flock"
)

// StateLock is an advisory lock held next to the state database while a command mutates it.
type StateLock struct {
	lock *flock.Flock
}

// LockPath returns the lock file path used for the database at dbPath.
func LockPath(dbPath string) string {
	return dbPath + ".lock"
}

// AcquireStateLock takes the lock for dbPath without blocking.
//
// Returns [ErrLocked] when another process holds it. In-memory databases need no lock and get a no-op [StateLock].
func AcquireStateLock(dbPath string) (*StateLock, error) {
	if dbPath == ":memory:" {
		return &StateLock{}, nil
	}

	lock := flock.New(LockPath(dbPath))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to lock %s: %v", ErrIO, lock.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, lock.Path())
	}
	return &StateLock{lock: lock}, nil
}

// Release unlocks the state lock. Safe to call on a nil or no-op lock.
func (l *StateLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
