package ipl

import "github.com/goraster/ipl/internal/parallel"

// Option configures a single filter invocation.
// Use functional options to customize filter behavior.
//
// Example:
//
//	// Default sequential execution
//	err := ipl.MedianFilter(buf, 2)
//
//	// Process channels on up to 4 goroutines
//	err := ipl.MedianFilter(buf, 2, ipl.WithWorkers(4))
type Option func(*filterOptions)

// filterOptions holds optional per-call configuration shared by the filters.
type filterOptions struct {
	workers int
}

// defaultFilterOptions returns the default filter options.
func defaultFilterOptions() filterOptions {
	return filterOptions{
		workers: 1, // sequential unless asked otherwise
	}
}

// applyOptions resolves the given options over the defaults.
func applyOptions(opts []Option) filterOptions {
	o := defaultFilterOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWorkers sets the number of goroutines a filter may use for its
// channel-independent work. Channels never share mutable state, so the
// result is byte-identical to sequential execution regardless of n.
//
// n is capped at the number of units the filter can actually split
// (the channel count for blur and median). Values below 1 select
// sequential execution.
//
// Example:
//
//	err := ipl.GaussianBlur(buf, 3.0, ipl.WithWorkers(runtime.NumCPU()))
func WithWorkers(n int) Option {
	return func(o *filterOptions) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// runPerChannel runs fn once per channel index, fanning out across up to
// workers goroutines. With one worker (or one channel) it stays on the
// calling goroutine; no goroutine is spawned that sequential execution
// would not need.
func runPerChannel(workers, channels int, fn func(c int)) {
	if workers <= 1 || channels <= 1 {
		for c := 0; c < channels; c++ {
			fn(c)
		}
		return
	}
	tasks := make([]func(), channels)
	for c := 0; c < channels; c++ {
		c := c
		tasks[c] = func() { fn(c) }
	}
	parallel.Do(workers, tasks...)
}
