package evtq

import (
	"math/rand"
	"testing"
)

func BenchmarkTimerQueue_Sweep(b *testing.B) {
	cases := []struct {
		name string
		N    int // the data size (i.e. number of existing timers)
	}{
		{"N-1k", 1000},
		{"N-5k", 5000},
		{"N-10k", 10000},
		{"N-50k", 50000},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			for n := 0; n < b.N; n++ {
				b.StopTimer()
				tq := NewTimerQueue(TimerHeapInitSize(1024))
				for i := 0; i < c.N; i++ {
					tq.ScheduleAfterFrom(0, rand.Int63()%5000, func() {})
				}
				b.StartTimer()
				for now := int64(0); tq.Size() > 0; now += 50 {
					tq.Fire(now)
				}
			}
		})
	}
}

func BenchmarkTimerQueue_Cancel(b *testing.B) {
	cases := []struct {
		name string
		N    int
	}{
		{"N-1k", 1000},
		{"N-5k", 5000},
		{"N-10k", 10000},
		{"N-50k", 50000},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			for n := 0; n < b.N; n++ {
				b.StopTimer()
				tq := NewTimerQueue(TimerHeapInitSize(1024))
				handles := make([]*TimerEntry, 0, c.N)
				for i := 0; i < c.N; i++ {
					te, _ := tq.ScheduleAfterFrom(0, rand.Int63()%5000, func() {})
					handles = append(handles, te)
				}
				rand.Shuffle(len(handles), func(i, j int) {
					handles[i], handles[j] = handles[j], handles[i]
				})
				b.StartTimer()
				for _, te := range handles {
					tq.Cancel(te)
				}
			}
		})
	}
}

func BenchmarkTimerQueue_Schedule(b *testing.B) {
	tq := NewTimerQueue(TimerHeapInitSize(1024))
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		tq.ScheduleAfterFrom(0, rand.Int63()%5000, func() {})
	}
}
