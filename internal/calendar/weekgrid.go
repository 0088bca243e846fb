package calendar

import "time"

const (
	daysPerWeek = 7
	hoursPerDay = 24
)

// SlotState is the derived availability of one grid cell for the viewer.
type SlotState string

const (
	// StateAvailable marks a cell with no booked entry for its identity tuple.
	StateAvailable SlotState = "available"
	// StateBookedByCurrentUser marks a cell booked by the session user.
	StateBookedByCurrentUser SlotState = "bookedByCurrentUser"
	// StateBookedByOther marks a cell booked by a different user.
	StateBookedByOther SlotState = "bookedByOther"
)

// Day is one column of the week grid.
type Day struct {
	Date  time.Time
	Hours [hoursPerDay]SlotState
}

// WeekGrid is the 7x24 projection of the ledger for one category tab, as seen
// by the current session. It is derived state: recomputed on every ledger
// change, tab change, or week navigation, and never stored.
type WeekGrid struct {
	Start    time.Time
	Category Category
	Days     [daysPerWeek]Day
}

// WeekStart returns the Monday of the Monday-started week containing the
// anchor. A Sunday anchor belongs to the preceding week block, so it maps to
// the previous Monday rather than the next day.
func WeekStart(anchor time.Time) time.Time {
	day := DayOf(anchor)
	if day.Weekday() == time.Sunday {
		return day.AddDate(0, 0, -6)
	}
	return day.AddDate(0, 0, -(int(day.Weekday()) - 1))
}

// BuildWeekGrid derives the week grid for the given ledger snapshot, viewer
// and category. It is a pure function of its inputs: identical arguments
// produce identical grids, and the snapshot is never modified.
//
// currentEmail is the session user's email, or empty when no session is
// active; without a session no cell can be bookedByCurrentUser.
func BuildWeekGrid(slots []Slot, currentEmail string, anchor time.Time, category Category) WeekGrid {
	grid := WeekGrid{Start: WeekStart(anchor), Category: category}

	owners := make(map[Key]string, len(slots))
	for _, slot := range slots {
		if slot.Category != category || !slot.Booked() {
			continue
		}
		owners[slot.Key()] = slot.OwnerEmail
	}

	for d := range grid.Days {
		date := grid.Start.AddDate(0, 0, d)
		day := Day{Date: date}
		for h := range day.Hours {
			owner, ok := owners[NewKey(date, HourLabel(h), category)]
			switch {
			case !ok:
				day.Hours[h] = StateAvailable
			case currentEmail != "" && owner == currentEmail:
				day.Hours[h] = StateBookedByCurrentUser
			default:
				day.Hours[h] = StateBookedByOther
			}
		}
		grid.Days[d] = day
	}

	return grid
}
