package vault

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	verrors "github.com/stencil-cli/stencil/internal/errors"
	logger "github.com/stencil-cli/stencil/internal/logging"
)

const (
	// staleLockAge is how old a lock file may be before it is presumed
	// abandoned by a crashed process and taken over.
	staleLockAge = 5 * time.Minute
)

// lockInfo is the payload written into the lock file.
type lockInfo struct {
	PID        int       `json:"pid"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// vaultLock is an advisory single-writer lock for the vault directory.
// The on-disk credential file is rewritten wholesale on every mutation, so
// two processes mutating the same vault would race with last-writer-wins;
// the lock turns that race into an up-front ErrVaultLocked.
type vaultLock struct {
	path   string
	logger logger.Logger
	held   bool
}

func newVaultLock(path string, log logger.Logger) *vaultLock {
	return &vaultLock{path: path, logger: log}
}

// acquire creates the lock file exclusively. An existing lock older than
// staleLockAge is treated as abandoned and replaced; a fresh one fails with
// ErrVaultLocked identifying the holder.
func (l *vaultLock) acquire() error {
	if err := l.tryCreate(); err == nil {
		return nil
	} else if !os.IsExist(err) {
		return fmt.Errorf("failed to create lock file %s: %w", l.path, err)
	}

	info, err := l.readInfo()
	if err != nil {
		// Unreadable lock payload, treat the lock as stale.
		l.logger.Warnf("Lock file %s is unreadable, taking over: %v", l.path, err)
		return l.takeOver()
	}

	age := time.Since(info.AcquiredAt)
	if age > staleLockAge {
		l.logger.Warnf("Stale vault lock held by pid %d for %s, taking over", info.PID, age.Round(time.Second))
		return l.takeOver()
	}

	return fmt.Errorf("held by pid %d since %s: %w",
		info.PID, info.AcquiredAt.Format(time.RFC3339), verrors.ErrVaultLocked)
}

// release removes the lock file. Safe to call when the lock is not held.
func (l *vaultLock) release() {
	if !l.held {
		return
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		l.logger.Warnf("Failed to remove lock file %s: %v", l.path, err)
	}
	l.held = false
}

func (l *vaultLock) tryCreate() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(lockInfo{PID: os.Getpid(), AcquiredAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		return err
	}

	l.held = true
	return nil
}

func (l *vaultLock) takeOver() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear stale lock %s: %w", l.path, err)
	}
	if err := l.tryCreate(); err != nil {
		return fmt.Errorf("failed to take over lock %s: %w", l.path, err)
	}
	return nil
}

func (l *vaultLock) readInfo() (*lockInfo, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, err
	}

	var info lockInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
