// Package evtq provides the timer-event priority queue used at the heart of
// an event loop: schedule a callback for an absolute time or a delay, cancel
// it through the returned handle, ask NextTime how long the loop may block,
// and Fire everything due after waking.
//
// The queue is single-threaded by contract. It is driven by one loop
// goroutine calling the methods strictly sequentially; callers that need
// cross-goroutine access must add their own locking around the whole queue.
package evtq

import (
	"errors"
)

// ErrInvalidArguments is returned by the Schedule* methods for a nil callback
// or a negative delay.
var ErrInvalidArguments = errors.New("evtq: invalid arguments")

// Detecting illegal struct copies using `go vet`
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// TimerQueue holds pending timer entries in a 4-ary min-heap ordered by due
// time. Every entry carries its current heap slot, so cancellation removes it
// in O(log n) without scanning.
type TimerQueue struct {
	noCopy

	fheap        []*TimerEntry
	clock        Clock
	panicHandler func(recovered any)
}

// NewTimerQueue creates an empty queue. See options.go for the available
// options.
func NewTimerQueue(optL ...Option) *TimerQueue {
	opts := setOptions(optL...)
	return &TimerQueue{
		fheap:        make([]*TimerEntry, 0, opts.timerHeapInitSize),
		clock:        opts.clock,
		panicHandler: opts.panicHandler,
	}
}

// ScheduleAt schedules cb to run at the absolute time expireAt (in msec).
// The returned handle is only good for Cancel.
//
// Scheduling never invalidates handles to entries already in the queue.
func (tq *TimerQueue) ScheduleAt(expireAt int64, cb func()) (*TimerEntry, error) {
	if cb == nil {
		return nil, ErrInvalidArguments
	}
	te := &TimerEntry{
		expiredAt: expireAt,
		cb:        cb,
	}
	tq.fheap = append(tq.fheap, te)
	te.index = len(tq.fheap) - 1
	tq.shiftUp(te.index)
	return te, nil
}

// ScheduleAfter schedules cb to run delay msec after the queue clock's
// current time.
func (tq *TimerQueue) ScheduleAfter(delay int64, cb func()) (*TimerEntry, error) {
	return tq.ScheduleAfterFrom(tq.clock.Now(), delay, cb)
}

// ScheduleAfterFrom schedules cb to run delay msec after the caller-supplied
// base time now.
func (tq *TimerQueue) ScheduleAfterFrom(now, delay int64, cb func()) (*TimerEntry, error) {
	if delay < 0 {
		return nil, ErrInvalidArguments
	}
	return tq.ScheduleAt(now+delay, cb)
}

// Cancel removes the entry referenced by te, its callback is never invoked.
// Canceling a handle whose entry already fired or was canceled is a no-op,
// as is a nil handle. Idempotent.
func (tq *TimerQueue) Cancel(te *TimerEntry) {
	if te == nil || te.index < 0 {
		return // already gone
	}
	if te.index >= len(tq.fheap) || tq.fheap[te.index] != te {
		return // not ours
	}
	tq.removeAt(te.index)
	te.cb = nil
}

// NextTime returns the due time of the front entry, used by the loop to size
// its blocking wait. ok is false when the queue is empty. Pure read.
func (tq *TimerQueue) NextTime() (when int64, ok bool) {
	if len(tq.fheap) == 0 {
		return 0, false
	}
	return tq.fheap[0].expiredAt, true
}

// Fire pops and synchronously invokes every entry with a due time <= now, in
// non-decreasing due-time order, and returns the count invoked. now is a
// fixed snapshot for the whole sweep, it is never re-read, so a callback
// scheduling against the real clock cannot extend the sweep.
//
// A callback may Schedule* or Cancel on this queue. The entry it schedules
// fires within the same sweep only if its due time is <= the snapshot.
//
// A panicking callback does not abort the sweep: the entry was already
// removed, the panic value goes to the queue's panic handler (default logs
// it, see TimerPanicHandler) and the remaining due entries still fire. The
// panicked entry counts in the return value.
func (tq *TimerQueue) Fire(now int64) int {
	fired := 0
	for len(tq.fheap) > 0 {
		te := tq.fheap[0]
		if te.expiredAt > now {
			break
		}
		tq.removeAt(0)
		fired++
		tq.invoke(te)
	}
	return fired
}

// FireNow is Fire with the queue clock's current time.
func (tq *TimerQueue) FireNow() int {
	return tq.Fire(tq.clock.Now())
}

// Size returns the number of pending entries.
func (tq *TimerQueue) Size() int {
	return len(tq.fheap)
}

func (tq *TimerQueue) invoke(te *TimerEntry) {
	defer func() {
		if r := recover(); r != nil {
			tq.panicHandler(r)
		}
	}()
	te.cb()
}

// removeAt takes the entry out of slot i, moves the last entry into its place
// and restores the heap property in both directions.
func (tq *TimerQueue) removeAt(i int) *TimerEntry {
	te := tq.fheap[i]
	last := len(tq.fheap) - 1
	if i != last {
		tq.fheap[i] = tq.fheap[last]
		tq.fheap[i].index = i
	}
	tq.fheap[last] = nil // avoid memory leak
	tq.fheap = tq.fheap[:last]
	te.index = -1
	if i < len(tq.fheap) {
		tq.shiftDown(i)
		tq.shiftUp(i)
	}
	return te
}

func (tq *TimerQueue) shiftUp(index int) {
	parent := (index - 1) / 4

	for index > 0 && tq.fheap[index].expiredAt < tq.fheap[parent].expiredAt {
		tq.fheap[index], tq.fheap[parent] = tq.fheap[parent], tq.fheap[index]
		tq.fheap[index].index = index
		tq.fheap[parent].index = parent
		index = parent
		parent = (index - 1) / 4
	}
}

func (tq *TimerQueue) shiftDown(index int) {
	size := len(tq.fheap)

	for {
		smallest := index
		childStart := 4*index + 1
		childEnd := childStart + 4

		for i := childStart; i < childEnd && i < size; i++ {
			if tq.fheap[i].expiredAt < tq.fheap[smallest].expiredAt {
				smallest = i
			}
		}
		if smallest == index {
			break
		}
		tq.fheap[index], tq.fheap[smallest] = tq.fheap[smallest], tq.fheap[index]
		tq.fheap[index].index = index
		tq.fheap[smallest].index = smallest
		index = smallest
	}
}
