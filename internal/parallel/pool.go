// Package parallel provides the fork-join runtime shared by the parallel
// multiplication engines: a bounded task pool, index-range loops and
// first-error collection.
package parallel

import (
	"errors"
	"runtime"
	"runtime/debug"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Pool
// ─────────────────────────────────────────────────────────────────────────────

// Pool bounds the number of goroutines spawned by fork-join recursion.
//
// A task that cannot acquire a slot runs inline in the forking goroutine, so
// Do never waits for capacity and nested forks cannot deadlock. A nil *Pool
// is valid and runs everything sequentially.
type Pool struct {
	sem chan struct{}
}

// NewPool creates a pool allowing up to workers concurrently forked tasks.
// A non-positive value selects runtime.GOMAXPROCS(0).
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{sem: make(chan struct{}, workers)}
}

// Workers returns the slot count, or 1 for a nil pool.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return cap(p.sem)
}

// Do runs every fn and returns once all of them have finished.
//
// fns[0] always runs in the calling goroutine; the others are forked while
// slots are available and run inline otherwise. If any task panics, Do waits
// for the remaining tasks and then re-panics in the caller with the first
// recovered value.
func (p *Pool) Do(fns ...func()) {
	if len(fns) == 0 {
		return
	}
	if p == nil || len(fns) == 1 {
		for _, fn := range fns {
			fn()
		}
		return
	}

	var (
		wg     sync.WaitGroup
		ec     ErrorCollector
		inline []func()
	)
	for _, fn := range fns[1:] {
		select {
		case p.sem <- struct{}{}:
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer func() { <-p.sem }()
				ec.SetError(capture(fn))
			}()
		default:
			inline = append(inline, fn)
		}
	}
	ec.SetError(capture(fns[0]))
	for _, fn := range inline {
		ec.SetError(capture(fn))
	}
	wg.Wait()

	if err := ec.Err(); err != nil {
		var tp *TaskPanic
		if errors.As(err, &tp) {
			panic(tp.Value)
		}
		panic(err)
	}
}

// For calls body over disjoint subranges that exactly cover [0, n).
// The range is split only when every chunk holds at least grain indices;
// otherwise body(0, n) runs in the caller.
func (p *Pool) For(n, grain int, body func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if grain < 1 {
		grain = 1
	}
	chunks := min(p.Workers(), n/grain)
	if p == nil || chunks < 2 {
		body(0, n)
		return
	}

	size := (n + chunks - 1) / chunks
	fns := make([]func(), 0, chunks)
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		fns = append(fns, func() { body(lo, hi) })
	}
	p.Do(fns...)
}

// capture runs fn and converts a panic into a *TaskPanic.
func capture(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TaskPanic{Value: r, Stack: debug.Stack()}
		}
	}()
	fn()
	return nil
}
