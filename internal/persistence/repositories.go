package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/appointment-booker/internal/calendar"
)

// UserRepository stores the registered user directory as one JSON array.
type UserRepository interface {
	LoadUsers(ctx context.Context) ([]UserRecord, error)
	SaveUsers(ctx context.Context, users []UserRecord) error
}

// SessionRepository stores the single active session, if any. LoadCurrentUser
// returns ErrNotFound when no session is active.
type SessionRepository interface {
	LoadCurrentUser(ctx context.Context) (UserRecord, error)
	SaveCurrentUser(ctx context.Context, user UserRecord) error
	ClearCurrentUser(ctx context.Context) error
}

// SlotRepository stores the slot ledger as one JSON array. LoadSlots returns
// ErrNotFound only when the ledger has never been persisted; an empty list is
// a valid, distinct state.
type SlotRepository interface {
	LoadSlots(ctx context.Context) ([]calendar.Slot, error)
	SaveSlots(ctx context.Context, slots []calendar.Slot) error
}

// Store implements the three repositories over a single KV.
type Store struct {
	kv KV
}

// NewStore wraps the given key-value store with the typed record accessors.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// LoadUsers returns the persisted directory. An absent record is an empty
// directory, not an error.
func (s *Store) LoadUsers(ctx context.Context) ([]UserRecord, error) {
	raw, err := s.kv.Get(ctx, KeyUsers)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var users []UserRecord
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode %s record: %w", KeyUsers, err)
	}
	return users, nil
}

// SaveUsers overwrites the persisted directory.
func (s *Store) SaveUsers(ctx context.Context, users []UserRecord) error {
	if users == nil {
		users = []UserRecord{}
	}
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", KeyUsers, err)
	}
	return s.kv.Set(ctx, KeyUsers, raw)
}

// LoadCurrentUser returns the active session user, or ErrNotFound.
func (s *Store) LoadCurrentUser(ctx context.Context) (UserRecord, error) {
	raw, err := s.kv.Get(ctx, KeyCurrentUser)
	if err != nil {
		return UserRecord{}, err
	}

	var user UserRecord
	if err := json.Unmarshal(raw, &user); err != nil {
		return UserRecord{}, fmt.Errorf("decode %s record: %w", KeyCurrentUser, err)
	}
	return user, nil
}

// SaveCurrentUser activates a session for the given user.
func (s *Store) SaveCurrentUser(ctx context.Context, user UserRecord) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", KeyCurrentUser, err)
	}
	return s.kv.Set(ctx, KeyCurrentUser, raw)
}

// ClearCurrentUser removes the active session. Clearing an absent session is
// not an error.
func (s *Store) ClearCurrentUser(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyCurrentUser)
}

// LoadSlots returns the persisted ledger, or ErrNotFound when it has never
// been written.
func (s *Store) LoadSlots(ctx context.Context) ([]calendar.Slot, error) {
	raw, err := s.kv.Get(ctx, KeyBookedSlots)
	if err != nil {
		return nil, err
	}

	var records []SlotRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode %s record: %w", KeyBookedSlots, err)
	}

	slots := make([]calendar.Slot, 0, len(records))
	for _, record := range records {
		slot, err := record.Slot()
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// SaveSlots overwrites the persisted ledger.
func (s *Store) SaveSlots(ctx context.Context, slots []calendar.Slot) error {
	records := make([]SlotRecord, 0, len(slots))
	for _, slot := range slots {
		records = append(records, NewSlotRecord(slot))
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", KeyBookedSlots, err)
	}
	return s.kv.Set(ctx, KeyBookedSlots, raw)
}
