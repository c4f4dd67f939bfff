package storage

import (
	"os"
	"syscall"
	"time"
)

// lockRetryInterval is how often an acquisition attempt is retried while
// waiting for a competing process to release the store.
const lockRetryInterval = 10 * time.Millisecond

// FileLock serializes access to the store file across ccspell processes.
// Two concurrent invocations (say, a batch build and a status listing) must
// not interleave writes, so the store takes an exclusive advisory flock(2)
// on a sibling ".lock" file for its whole lifetime.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock prepares a lock for the store at path. Nothing is acquired
// until Lock is called; the lock file lives at path + ".lock".
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path + ".lock"}
}

// Lock acquires the exclusive lock, polling until the timeout elapses.
// Returns ErrLockTimeout when another process holds the store for the whole
// window.
func (l *FileLock) Lock(timeout time.Duration) error {
	var err error
	l.file, err = os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return &StorageError{Op: "lock", Entity: "store", ID: l.path, Err: err}
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if err = syscall.Flock(int(l.file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err == nil {
			return nil
		}
		time.Sleep(lockRetryInterval)
	}

	l.file.Close()
	l.file = nil
	return ErrLockTimeout
}

// Unlock releases the lock and removes the lock file. Unlocking an
// unacquired lock is a no-op.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	l.file.Close()
	os.Remove(l.path)
	l.file = nil
	return nil
}
