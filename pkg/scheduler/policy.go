package scheduler

// Policy names two slot-loop behaviors carried over from the previous
// system. The zero value reproduces them exactly; flip a field to opt
// into the corrected behavior.
type Policy struct {
	// RetrySlotOnDuplicate offers the slot to the next ranked candidate
	// when an assignment insert turns out to be a duplicate no-op.
	// Legacy behavior moves on and silently consumes the slot.
	RetrySlotOnDuplicate bool

	// FillRemainingSlots keeps trying the later slots of the same date
	// and shift kind after one slot could not be filled. Legacy behavior
	// abandons them all after the first unfillable slot.
	FillRemainingSlots bool
}
