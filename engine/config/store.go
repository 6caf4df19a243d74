package config

import "sync/atomic"

// Store holds the active settings. Readers never block writers.
type Store struct {
	current atomic.Pointer[Settings]
}

func NewStore(initial *Settings) *Store {
	if initial == nil {
		initial = Default()
	}
	s := &Store{}
	s.current.Store(initial)
	return s
}

// Get returns the active settings. The value must be treated as read-only.
func (s *Store) Get() *Settings {
	return s.current.Load()
}

// Set validates and swaps in new settings.
func (s *Store) Set(settings *Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.current.Store(settings)
	return nil
}
