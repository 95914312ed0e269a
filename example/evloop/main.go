//go:build linux

package main

import (
	"fmt"
	"syscall"
	"time"

	"github.com/evtq/evtq"
)

// Minimal enclosing loop: block in epoll on a timerfd kept in sync with the
// queue's NextTime, fire everything due after waking, exit once drained.
func main() {
	tq := evtq.NewTimerQueue(evtq.TimerHeapInitSize(1024))

	tq.ScheduleAfter(100, func() { fmt.Println("+100ms") })
	tq.ScheduleAfter(250, func() { fmt.Println("+250ms") })
	canceled, _ := tq.ScheduleAfter(400, func() { fmt.Println("never printed") })
	tq.ScheduleAfter(500, func() { fmt.Println("+500ms, done") })
	tq.Cancel(canceled)

	efd, err := syscall.EpollCreate1(syscall.EPOLL_CLOEXEC)
	if err != nil {
		panic("epoll_create1: " + err.Error())
	}
	tfd, err := evtq.NewTimerFd()
	if err != nil {
		panic(err.Error())
	}
	defer tfd.Close()

	ev := syscall.EpollEvent{Events: syscall.EPOLLIN, Fd: int32(tfd.Fd())}
	if err = syscall.EpollCtl(efd, syscall.EPOLL_CTL_ADD, tfd.Fd(), &ev); err != nil {
		panic("epoll_ctl add: " + err.Error())
	}

	events := make([]syscall.EpollEvent, 8)
	for tq.Size() > 0 {
		tfd.Sync(tq, time.Now().UnixMilli())

		nfds, err := syscall.EpollWait(efd, events, -1)
		if err != nil && err != syscall.EINTR {
			panic("epoll_wait: " + err.Error())
		}
		if nfds > 0 {
			tfd.Drain()
		}
		tq.FireNow()
	}
}
