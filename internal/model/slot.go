package model

import (
	"fmt"
	"strings"
	"time"
)

// SlotsPerDay is the number of half-hour slots in a day.
const SlotsPerDay = 48

// SlotMinutes is the width of one slot.
const SlotMinutes = 30

// Slot is a half-hour time-of-day bucket in [0, SlotsPerDay).
// Slot 0 starts at 00:00 and slot 47 at 23:30. The date is discarded.
type Slot int

// SlotOf returns the slot a timestamp falls in and whether the timestamp is
// aligned to a slot boundary (zero seconds, minute 0 or 30).
func SlotOf(t time.Time) (Slot, bool) {
	mins := t.Hour()*60 + t.Minute()
	aligned := t.Minute()%SlotMinutes == 0 && t.Second() == 0 && t.Nanosecond() == 0
	return Slot(mins / SlotMinutes), aligned
}

// Valid reports whether s is within [0, SlotsPerDay).
func (s Slot) Valid() bool { return s >= 0 && s < SlotsPerDay }

// Label renders the slot start as "HH:MM".
func (s Slot) Label() string {
	mins := int(s) * SlotMinutes
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

func (s Slot) String() string { return s.Label() }

// ParseSlot parses an "HH:MM" (or "HH:MM:SS") time-of-day label.
// The time must sit on a half-hour boundary.
func ParseSlot(s string) (Slot, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	var h, m, sec int
	if _, err := fmt.Sscanf(parts[0], "%d", &h); err != nil {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &m); err != nil {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if len(parts) == 3 {
		if _, err := fmt.Sscanf(parts[2], "%d", &sec); err != nil {
			return 0, fmt.Errorf("invalid second in %q", s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec != 0 || m%SlotMinutes != 0 {
		return 0, fmt.Errorf("time %q is not a half-hour slot", s)
	}
	return Slot((h*60 + m) / SlotMinutes), nil
}

// SlotLabels returns the 48 slot labels in order.
func SlotLabels() []string {
	out := make([]string, SlotsPerDay)
	for i := range out {
		out[i] = Slot(i).Label()
	}
	return out
}
