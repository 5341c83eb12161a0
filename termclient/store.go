package main

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
)

const (
	appName     = "cyber-security-invaders"
	slotsObject = "slots"
	authObject  = "auth"
	tokenProp   = "token"
	SlotCount   = 3
)

// Store keeps save slots and the login token on disk. A nil manager
// disables persistence; every call then becomes a no-op.
type Store struct {
	m *gdata.Manager
}

func OpenStore() *Store {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("storage unavailable: %v", err)
		return &Store{}
	}
	return &Store{m: m}
}

func slotProp(slot int) string {
	return fmt.Sprintf("slot%d", slot)
}

func validSlot(slot int) bool {
	return slot >= 1 && slot <= SlotCount
}

// SaveSlot stores a snapshot blob
func (s *Store) SaveSlot(slot int, blob []byte) error {
	if s.m == nil {
		return nil
	}
	if !validSlot(slot) {
		return fmt.Errorf("invalid slot %d", slot)
	}
	return s.m.SaveObjectProp(slotsObject, slotProp(slot), blob)
}

// LoadSlot returns the blob in a slot, or nil if the slot is empty
func (s *Store) LoadSlot(slot int) ([]byte, error) {
	if s.m == nil || !validSlot(slot) {
		return nil, nil
	}
	if !s.m.ObjectPropExists(slotsObject, slotProp(slot)) {
		return nil, nil
	}
	return s.m.LoadObjectProp(slotsObject, slotProp(slot))
}

// Token returns the stored login token, or "" if none
func (s *Store) Token() string {
	if s.m == nil || !s.m.ObjectPropExists(authObject, tokenProp) {
		return ""
	}
	data, err := s.m.LoadObjectProp(authObject, tokenProp)
	if err != nil {
		return ""
	}
	return string(data)
}

func (s *Store) SetToken(token string) error {
	if s.m == nil {
		return nil
	}
	return s.m.SaveObjectProp(authObject, tokenProp, []byte(token))
}
