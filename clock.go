package evtq

import (
	"time"
)

// Clock supplies the "now" used whenever the caller does not pass one
// explicitly (ScheduleAfter, FireNow). Substitutable for deterministic tests.
type Clock interface {
	// Now in milliseconds
	Now() int64
}

type sysClock struct{}

func (sysClock) Now() int64 {
	return time.Now().UnixMilli()
}

// SysClock is the default time source, time.Now().UnixMilli()
var SysClock Clock = sysClock{}
