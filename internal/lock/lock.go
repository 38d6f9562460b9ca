// Package lock provides an advisory lock file guarding read-modify-install
// of the crontab. crondir does not lock by default; callers opt in.
package lock

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// ErrLocked is returned when another live process holds the lock
var ErrLocked = errors.New("crondir is locked by another process")

// writeGrace is how long an unparsable lock file is assumed to be mid-write.
const writeGrace = 5 * time.Second

// Lock is a held advisory lock.
type Lock struct {
	path  string
	token string
}

// Acquire creates the lock file at path. A lock left behind by a process that
// no longer runs is taken over, as is an unparsable lock file older than a
// few seconds.
func Acquire(path string) (*Lock, error) {
	token := uuid.New().String()

	for attempt := 0; attempt < 2; attempt++ {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := fmt.Fprintf(file, "%d\n%s\n", os.Getpid(), token)
			cerr := file.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return nil, fmt.Errorf("failed to write lock file: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path, token: token}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lock file: %w", err)
		}

		pid, _, rerr := readLock(path)
		switch {
		case os.IsNotExist(rerr):
			// Released in the meantime
			continue
		case rerr != nil:
			// Another process may have created the file but not written it yet
			if !unreadableIsStale(path) {
				return nil, fmt.Errorf("%w (lock file %s is being written)", ErrLocked, path)
			}
		case IsRunning(pid):
			return nil, fmt.Errorf("%w (pid %d, lock file %s)", ErrLocked, pid, path)
		}
		// Stale lock
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lock file: %w", err)
		}
	}

	return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, path)
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the lock file if it still belongs to this lock.
func (l *Lock) Release() error {
	_, token, err := readLock(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if token != l.token {
		return fmt.Errorf("lock file %s was taken over by another process", l.path)
	}
	return os.Remove(l.path)
}

// unreadableIsStale reports whether an unparsable lock file is old enough to
// be left over from a crash rather than being written right now.
func unreadableIsStale(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return os.IsNotExist(err)
	}
	return time.Since(info.ModTime()) > writeGrace
}

// readLock читает PID и токен из lock файла
func readLock(path string) (int, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, "", err
	}

	pidLine, token, _ := strings.Cut(string(data), "\n")
	var pid int
	if _, err := fmt.Sscanf(pidLine, "%d", &pid); err != nil {
		return 0, "", err
	}

	return pid, strings.TrimSpace(token), nil
}

// IsRunning проверяет что процесс запущен
func IsRunning(pid int) bool {
	if pid <= 0 {
		return false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// Send signal 0 - проверяет существование процесса
	return process.Signal(syscall.Signal(0)) == nil
}
