package evtq

type Options struct {
	timerHeapInitSize int

	clock        Clock
	panicHandler func(recovered any)
}

type Option func(*Options)

func setOptions(optL ...Option) *Options {
	opts := &Options{
		//= default options
		timerHeapInitSize: 64,
		clock:             SysClock,
		panicHandler:      defaultPanicHandler,
	}
	for _, opt := range optL {
		opt(opts)
	}
	return opts
}

// TimerHeapInitSize sets the initial capacity of the timer heap
func TimerHeapInitSize(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.timerHeapInitSize = n
		}
	}
}

// TimerClock replaces the default time source (time.Now().UnixMilli()),
// mainly for deterministic tests
func TimerClock(c Clock) Option {
	return func(o *Options) {
		if c != nil {
			o.clock = c
		}
	}
}

// TimerPanicHandler receives the value recovered from a callback that panics
// during Fire. The sweep continues either way; the default handler logs the
// value at error level.
func TimerPanicHandler(f func(recovered any)) Option {
	return func(o *Options) {
		if f != nil {
			o.panicHandler = f
		}
	}
}

func defaultPanicHandler(recovered any) {
	Error("timer callback panic: %v", recovered)
}
