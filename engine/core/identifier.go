package core

import (
	"fmt"
	"sync"
)

var (
	identifierMu sync.Mutex
	owners       []interface{}
)

// IdentifierAquireNewID reserves the lowest free id for the given owner.
func IdentifierAquireNewID(owner interface{}) uint32 {
	identifierMu.Lock()
	defer identifierMu.Unlock()

	if len(owners) == 0 {
		owners = make([]interface{}, 100)
	}
	length := uint32(len(owners))
	for i := uint32(0); i < length; i++ {
		// Existing free spot. Take it.
		if owners[i] == nil {
			owners[i] = owner
			return i
		}
	}

	// No free slots, so the new id is the old length.
	owners = append(owners, owner)
	return length
}

// IdentifierOwner returns the owner registered for id, or nil.
func IdentifierOwner(id uint32) interface{} {
	identifierMu.Lock()
	defer identifierMu.Unlock()

	if id >= uint32(len(owners)) {
		return nil
	}
	return owners[id]
}

func IdentifierReleaseID(id uint32) error {
	identifierMu.Lock()
	defer identifierMu.Unlock()

	if len(owners) == 0 {
		return fmt.Errorf("identifier release called before any id was acquired: %w", ErrIdentifierReleased)
	}

	length := uint32(len(owners))
	if id >= length {
		return fmt.Errorf("identifier %d out of range (max=%d): %w", id, length, ErrIdentifierReleased)
	}
	if owners[id] == nil {
		return fmt.Errorf("identifier %d: %w", id, ErrIdentifierReleased)
	}

	// Just zero out the entry, making it available for use.
	owners[id] = nil
	return nil
}
