package scheduling

import (
	"fmt"
	"slices"
)

// AvailabilityStore holds one user's availability slots in insertion order.
// It is not safe for concurrent use; Session serializes access.
type AvailabilityStore struct {
	slots []AvailabilitySlot
	ids   IDGenerator
}

func NewAvailabilityStore(ids IDGenerator) *AvailabilityStore {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &AvailabilityStore{ids: ids}
}

// Add appends a new slot with a fresh id.
func (s *AvailabilityStore) Add(in NewSlot) (AvailabilitySlot, error) {
	iv := Interval{Start: in.Start, End: in.End}
	if !iv.Valid() {
		return AvailabilitySlot{}, ErrInvalidInterval
	}

	slot := AvailabilitySlot{
		ID:          s.freshID(),
		Start:       in.Start,
		End:         in.End,
		DisplayHint: in.DisplayHint,
	}
	s.slots = append(s.slots, slot)
	return slot, nil
}

// Restore appends a slot that already has an id, e.g. from a seed source.
func (s *AvailabilityStore) Restore(slot AvailabilitySlot) error {
	if slot.ID == "" {
		return fmt.Errorf("restore slot: empty id")
	}
	if !slot.Interval().Valid() {
		return fmt.Errorf("restore slot %s: %w", slot.ID, ErrInvalidInterval)
	}
	if s.indexOf(slot.ID) >= 0 {
		return fmt.Errorf("restore slot %s: %w", slot.ID, ErrDuplicateID)
	}
	s.slots = append(s.slots, slot)
	return nil
}

// Modify merges patch into the slot in place. The slot keeps its id and position.
func (s *AvailabilityStore) Modify(id string, patch SlotPatch) (AvailabilitySlot, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return AvailabilitySlot{}, fmt.Errorf("modify slot %s: %w", id, ErrSlotNotFound)
	}

	merged := s.slots[idx]
	if patch.Start != nil {
		merged.Start = *patch.Start
	}
	if patch.End != nil {
		merged.End = *patch.End
	}
	if patch.DisplayHint != nil {
		merged.DisplayHint = *patch.DisplayHint
	}
	if !merged.Interval().Valid() {
		return AvailabilitySlot{}, ErrInvalidInterval
	}

	s.slots[idx] = merged
	return merged, nil
}

// Delete removes the slot. Meetings are never touched.
func (s *AvailabilityStore) Delete(id string) (AvailabilitySlot, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return AvailabilitySlot{}, fmt.Errorf("delete slot %s: %w", id, ErrSlotNotFound)
	}
	removed := s.slots[idx]
	s.slots = slices.Delete(s.slots, idx, idx+1)
	return removed, nil
}

func (s *AvailabilityStore) Get(id string) (AvailabilitySlot, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return AvailabilitySlot{}, ErrSlotNotFound
	}
	return s.slots[idx], nil
}

// List returns a copy of the slots in insertion order.
func (s *AvailabilityStore) List() []AvailabilitySlot {
	return slices.Clone(s.slots)
}

// Containing returns the first slot that fully contains iv.
func (s *AvailabilityStore) Containing(iv Interval) (AvailabilitySlot, bool) {
	for _, slot := range s.slots {
		if slot.Interval().Contains(iv) {
			return slot, true
		}
	}
	return AvailabilitySlot{}, false
}

func (s *AvailabilityStore) Len() int {
	return len(s.slots)
}

func (s *AvailabilityStore) indexOf(id string) int {
	return slices.IndexFunc(s.slots, func(slot AvailabilitySlot) bool {
		return slot.ID == id
	})
}

func (s *AvailabilityStore) freshID() string {
	id := s.ids.New()
	for s.indexOf(id) >= 0 {
		id = s.ids.New()
	}
	return id
}
