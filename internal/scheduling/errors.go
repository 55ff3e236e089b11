package scheduling

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInterval     = errors.New("interval start must be before end")
	ErrOutsideAvailability = errors.New("interval is not contained in any availability slot")
	ErrNotFound            = errors.New("not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrDuplicateID         = errors.New("duplicate id")
)

var (
	ErrSlotNotFound    = fmt.Errorf("availability slot %w", ErrNotFound)
	ErrMeetingNotFound = fmt.Errorf("meeting %w", ErrNotFound)
)
