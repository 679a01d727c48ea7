package store

import (
	"log/slog"
)

// SemiPersistent is a string value that is read from a Store once and written
// back every time it changes afterwards
type SemiPersistent struct {
	store  Store
	key    string
	value  string
	logger *slog.Logger
}

// NewSemiPersistent reads key once. A missing or empty stored value, or a
// failed read, yields initial.
func NewSemiPersistent(s Store, key, initial string, logger *slog.Logger) *SemiPersistent {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &SemiPersistent{store: s, key: key, value: initial, logger: logger}

	stored, ok, err := s.Get(key)
	switch {
	case err != nil:
		logger.Warn("reading persisted value failed, using default", "key", key, "default", initial, "error", err)
	case ok && stored != "":
		p.value = stored
	}
	return p
}

// Value returns the current value
func (p *SemiPersistent) Value() string {
	return p.value
}

// Set updates the value and writes it to the store if it changed.
// The in-memory value is updated even when the write fails.
func (p *SemiPersistent) Set(value string) (bool, error) {
	if value == p.value {
		return false, nil
	}
	p.value = value
	if err := p.store.Set(p.key, value); err != nil {
		return true, err
	}
	return true, nil
}
