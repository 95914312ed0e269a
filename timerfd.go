//go:build linux

package evtq

import (
	"errors"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// TimerFd hooks a TimerQueue into an fd-based event loop: keep it armed to
// the queue's NextTime (Sync), add it to epoll, then Drain and FireNow when
// it polls readable. The loop never needs to compute a wait timeout itself.
type TimerFd struct {
	tfd     int
	armedAt int64 // msec the fd is currently set to expire at, -1 when disarmed
}

func NewTimerFd() (*TimerFd, error) {
	// since Linux 2.6.25
	tfd, err := unix.TimerfdCreate(unix.CLOCK_BOOTTIME, unix.TFD_NONBLOCK|unix.TFD_CLOEXEC)
	if err != nil {
		if err == unix.ENOSYS {
			return nil, errors.New("timerfd_create system call not implemented")
		}
		return nil, errors.New("timerfd_create: " + err.Error())
	}
	return &TimerFd{tfd: tfd, armedAt: -1}, nil
}

func (tf *TimerFd) Fd() int {
	return tf.tfd
}

// ArmAt sets the fd to expire at the absolute time at, given the current
// time now (both msec). Due times at or before now round up to 1ms since a
// zero it_value would disarm the fd instead.
func (tf *TimerFd) ArmAt(at, now int64) {
	delay := at - now
	if delay < 1 {
		delay = 1
	}
	timeSpec := unix.ItimerSpec{
		Value: unix.NsecToTimespec(delay * 1000 * 1000),
	}
	unix.TimerfdSettime(tf.tfd, 0 /*Relative time*/, &timeSpec, nil)
	tf.armedAt = at
}

// Disarm stops the fd without closing it.
func (tf *TimerFd) Disarm() {
	var timeSpec unix.ItimerSpec
	unix.TimerfdSettime(tf.tfd, 0, &timeSpec, nil)
	tf.armedAt = -1
}

// Sync arms the fd to the queue's front due time, skipping the syscall when
// nothing changed, and disarms it when the queue is empty.
func (tf *TimerFd) Sync(tq *TimerQueue, now int64) {
	at, ok := tq.NextTime()
	if !ok {
		if tf.armedAt != -1 {
			tf.Disarm()
		}
		return
	}
	if at != tf.armedAt {
		tf.ArmAt(at, now)
	}
}

// Drain consumes the expiration counter after the fd polls readable.
func (tf *TimerFd) Drain() {
	var v int64
	buf := (*(*[8]byte)(unsafe.Pointer(&v)))[:]
	for {
		_, err := syscall.Read(tf.tfd, buf)
		if err == syscall.EINTR {
			continue
		}
		break
	}
	tf.armedAt = -1
}

func (tf *TimerFd) Close() {
	if tf.tfd != -1 {
		syscall.Close(tf.tfd)
		tf.tfd = -1
	}
}
