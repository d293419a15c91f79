// Package procmgr tracks live generators running in the foreground of
// another process, so `stop` and `status` can find them by name.
package procmgr

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

var ErrNotRunning = errors.New("generator is not running")

// Entry is the state file written by a running generator.
type Entry struct {
	Name      string    `json:"name"`
	PID       int       `json:"pid"`
	Interval  string    `json:"interval"`
	StartedAt time.Time `json:"started_at"`
}

// Manager keeps one JSON state file per generator under dir.
type Manager struct {
	dir         string
	stopTimeout time.Duration
}

func New(dir string) *Manager {
	return &Manager{dir: dir, stopTimeout: 5 * time.Second}
}

func (m *Manager) path(name string) string {
	return filepath.Join(m.dir, name+".json")
}

// Register records the current process as the running generator name.
// It fails when another live process already holds the name.
func (m *Manager) Register(name string, interval time.Duration) (Entry, error) {
	if e, err := m.Status(name); err == nil && e.PID != os.Getpid() {
		return e, fmt.Errorf("%s is already running with pid %d", name, e.PID)
	}

	entry := Entry{
		Name:      name,
		PID:       os.Getpid(),
		Interval:  interval.String(),
		StartedAt: time.Now().UTC(),
	}
	if err := m.Save(entry); err != nil {
		return entry, err
	}
	return entry, nil
}

func (m *Manager) Save(entry Entry) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path(entry.Name), data, 0o644)
}

// Load reads the state file without checking the process.
func (m *Manager) Load(name string) (Entry, error) {
	data, err := os.ReadFile(m.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, ErrNotRunning
		}
		return Entry{}, err
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, fmt.Errorf("corrupt state file %s: %w", m.path(name), err)
	}
	return entry, nil
}

// Status returns the entry of a live generator. A state file whose process
// is gone is removed and reported as ErrNotRunning.
func (m *Manager) Status(name string) (Entry, error) {
	entry, err := m.Load(name)
	if err != nil {
		return Entry{}, err
	}
	if !IsRunning(entry.PID) {
		m.Remove(name)
		return Entry{}, ErrNotRunning
	}
	return entry, nil
}

// Stop sends SIGTERM to the generator and waits for it to exit, falling
// back to SIGKILL after the timeout.
func (m *Manager) Stop(name string) error {
	entry, err := m.Status(name)
	if err != nil {
		return err
	}
	defer m.Remove(name)

	proc, err := os.FindProcess(entry.PID)
	if err != nil {
		return nil
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return nil // already gone
	}

	deadline := time.Now().Add(m.stopTimeout)
	for time.Now().Before(deadline) {
		if !IsRunning(entry.PID) {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	proc.Signal(syscall.SIGKILL)
	return nil
}

// Remove deletes the state file.
func (m *Manager) Remove(name string) {
	os.Remove(m.path(name))
}

// IsRunning checks if a process with the given PID is still alive.
func IsRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// On Unix, FindProcess always succeeds. Signal 0 probes existence.
	return proc.Signal(syscall.Signal(0)) == nil
}
