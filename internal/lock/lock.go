package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/shenyaoyiivy/Glimmer-Mood/internal/constants"
	"github.com/shenyaoyiivy/Glimmer-Mood/internal/logger"
)

// ErrLocked is returned when another live glimmer process holds the lock
var ErrLocked = errors.New("another glimmer process is running")

// findProcessFunc is overridden in tests
var findProcessFunc = ps.FindProcess

// Lock is a PID lockfile guarding the journal against concurrent writers
type Lock struct {
	path string
}

// Path returns the lockfile location
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock in dir. A lockfile left behind by a process that is
// no longer running (or is not glimmer) is removed and taken over.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.LockfileName)

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := f.WriteString(strconv.Itoa(os.Getpid()))
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			return &Lock{path: path}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		pid, alive := holder(path)
		if alive {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}
		logger.Warn("Removing stale lockfile", "path", path, "pid", pid)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, ErrLocked
}

// holder reads the PID in the lockfile and reports whether that process is
// a running glimmer instance
func holder(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	if pid == os.Getpid() {
		return pid, true
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false
	}
	return pid, strings.HasPrefix(process.Executable(), constants.AppName)
}

// Release removes the lockfile. Releasing twice is harmless.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	l.path = ""
	return nil
}
