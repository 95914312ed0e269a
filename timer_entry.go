package evtq

// TimerEntry is one scheduled due-time-plus-callback unit of work.
//
// The pointer returned by the Schedule* methods is an opaque handle whose only
// use is TimerQueue.Cancel. The queue owns the entry, the caller holds a
// reference and must not mutate it. Entries are never recycled, so a handle
// whose entry already fired (or was canceled) stays safely checkable forever.
type TimerEntry struct {
	noCopy

	expiredAt int64 // in msec, immutable after creation
	cb        func()

	// Slot in the 4-heap, maintained on every swap. -1 once the entry
	// has fired or been canceled.
	index int
}

// ExpireAt returns the absolute due time in milliseconds.
func (te *TimerEntry) ExpireAt() int64 {
	return te.expiredAt
}
