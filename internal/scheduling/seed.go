package scheduling

import (
	"context"
	"time"
)

// Seed is the initial state of a session.
type Seed struct {
	Availability []AvailabilitySlot
	Meetings     []Meeting
}

// SeedSource supplies the initial state for a user's session.
type SeedSource interface {
	Load(ctx context.Context, userID string) (Seed, error)
}

// SeedFunc adapts a function to SeedSource.
type SeedFunc func(ctx context.Context, userID string) (Seed, error)

func (f SeedFunc) Load(ctx context.Context, userID string) (Seed, error) {
	return f(ctx, userID)
}

// EmptySeed starts every session with no slots and no meetings.
var EmptySeed = SeedFunc(func(context.Context, string) (Seed, error) {
	return Seed{}, nil
})

// StaticSeed gives every user the demo fixture: one confirmed investor call and
// two working-day availability slots.
var StaticSeed = SeedFunc(func(context.Context, string) (Seed, error) {
	return DemoSeed(), nil
})

func DemoSeed() Seed {
	at := func(day, hour, min int) time.Time {
		return time.Date(2025, time.January, day, hour, min, 0, 0, time.UTC)
	}

	return Seed{
		Availability: []AvailabilitySlot{
			{ID: "avail1", Start: at(5, 9, 0), End: at(5, 17, 0), DisplayHint: "background"},
			{ID: "avail2", Start: at(6, 9, 0), End: at(6, 17, 0), DisplayHint: "background"},
		},
		Meetings: []Meeting{
			{
				ID:        "1",
				Title:     "Investor Call",
				Start:     at(5, 10, 0),
				End:       at(5, 10, 30),
				Status:    StatusConfirmed,
				CreatedAt: at(5, 9, 0),
				UpdatedAt: at(5, 9, 0),
			},
		},
	}
}
