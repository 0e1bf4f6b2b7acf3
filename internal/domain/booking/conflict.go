package booking

// HasConflict reports whether the candidate slot overlaps any existing slot.
// A linear scan is deliberate: one charger carries a small, locally-bounded
// number of live bookings.
func HasConflict(candidate TimeSlot, existing []TimeSlot) bool {
	_, found := FindConflict(candidate, existing)
	return found
}

// FindConflict returns the first existing slot that overlaps the candidate.
func FindConflict(candidate TimeSlot, existing []TimeSlot) (TimeSlot, bool) {
	for _, slot := range existing {
		if candidate.Overlaps(slot) {
			return slot, true
		}
	}
	return TimeSlot{}, false
}
