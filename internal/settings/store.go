package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultPath is the well-known settings file location.
const DefaultPath = "~/.arena/settings.yaml"

// Change describes one persisted update.
type Change struct {
	Key string
	Old string
	New string
	At  time.Time
}

// ChangeRecorder receives every persisted change. Implemented by the
// storage package; the store works without one.
type ChangeRecorder interface {
	RecordChange(c Change) error
}

// Store owns the configuration record and its file.
//
// All writes go through Load, Set and Reset, which are serialized by a
// single lock. Readers take copies with Snapshot.
type Store struct {
	path     string
	defaults Record
	logger   *log.Logger
	journal  ChangeRecorder
	now      func() time.Time

	mu  sync.RWMutex
	rec Record
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load warnings and write failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithJournal sets the recorder notified of persisted changes.
func WithJournal(j ChangeRecorder) Option {
	return func(s *Store) {
		s.journal = j
	}
}

// NewStore creates a store for the file at path. A leading ~ expands to
// the home directory. The record holds defaults until Load is called.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:     ExpandPath(path),
		defaults: DefaultRecord(),
		logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "settings",
		}),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rec = s.defaults.Clone()
	return s
}

// ExpandPath replaces a leading ~ with the user's home directory.
// The path is returned unchanged when the home directory is unknown.
func ExpandPath(path string) string {
	if path == "" {
		path = DefaultPath
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// Defaults returns a copy of the record used for missing or invalid keys.
func (s *Store) Defaults() Record {
	return s.defaults.Clone()
}

// Path returns the resolved settings file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file and replaces the in-memory record.
//
// Load never fails: a missing or unreadable file yields the defaults,
// and missing or invalid keys fall back to their default values. Whenever
// something was repaired, the complete record is written back so the
// file converges to a full, valid state.
func (s *Store) Load() (Record, LoadReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.defaults.Clone()
	var report LoadReport

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		report.Created = true
		s.logger.Info("settings file not found, creating defaults", "path", s.path)
	case err != nil:
		report.Corrupt = fmt.Errorf("settings: cannot read %s: %w", s.path, err)
		s.logger.Warn("cannot read settings file, using defaults", "path", s.path, "error", err)
	default:
		decoded, r, decErr := decode(data, s.defaults)
		if decErr != nil {
			report.Corrupt = decErr
			s.logger.Warn("settings file is corrupt, using defaults", "path", s.path, "error", decErr)
		} else {
			rec, report = decoded, r
			if report.Corrupt != nil {
				s.logger.Warn("settings file has malformed sections", "path", s.path, "error", report.Corrupt)
			}
		}
	}

	for _, key := range report.Missing {
		s.logger.Warn("missing setting, using default", "key", key)
	}
	for _, key := range report.Invalid {
		s.logger.Warn("invalid setting, using default", "key", key)
	}
	for _, key := range report.Unknown {
		s.logger.Debug("ignoring unrecognized setting", "key", key)
	}

	if report.Repaired() {
		if err := s.save(rec); err != nil {
			report.SaveErr = err
			s.logger.Error("could not write settings file", "path", s.path, "error", err)
		} else {
			report.Saved = true
		}
	}

	s.rec = rec
	return rec.Clone(), report
}

// Snapshot returns a copy of the current record.
func (s *Store) Snapshot() Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Clone()
}

// Get returns the formatted value of key.
func (s *Store) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Get(key)
}

// Set updates one key and rewrites the file.
//
// Unknown keys and invalid values are rejected before anything is written.
// If the file cannot be written the error is logged and returned, and the
// in-memory record keeps its previous value.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.rec.Get(key)
	if err != nil {
		return err
	}

	next := s.rec.Clone()
	if err := next.Set(key, value); err != nil {
		return err
	}

	if err := s.save(next); err != nil {
		s.logger.Error("could not write settings file", "path", s.path, "key", key, "error", err)
		return err
	}
	s.rec = next

	updated, _ := next.Get(key)
	s.logger.Debug("setting updated", "key", key, "old", old, "new", updated)
	if old != updated {
		s.record(Change{Key: key, Old: old, New: updated, At: s.now()})
	}
	return nil
}

// Reset restores the defaults and rewrites the file.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.defaults.Clone()
	if err := s.save(next); err != nil {
		s.logger.Error("could not write settings file", "path", s.path, "error", err)
		return err
	}

	prev := s.rec
	s.rec = next

	at := s.now()
	for _, key := range Keys() {
		old, _ := prev.Get(key)
		updated, _ := next.Get(key)
		if old != updated {
			s.record(Change{Key: key, Old: old, New: updated, At: at})
		}
	}
	return nil
}

func (s *Store) save(r Record) error {
	data, err := encode(r)
	if err != nil {
		return err
	}
	return writeFile(s.path, data)
}

func (s *Store) record(c Change) {
	if s.journal == nil {
		return
	}
	if err := s.journal.RecordChange(c); err != nil {
		s.logger.Warn("could not record settings change", "key", c.Key, "error", err)
	}
}
