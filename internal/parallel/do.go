// Package parallel provides the two execution shapes the engine needs:
// Do for transient fan-out over a handful of independent tasks (the
// filters' per-channel work), and Pool for long-lived batch processing
// with work stealing (the command line tool's per-file jobs).
package parallel

import "sync"

// Do runs the tasks across at most workers goroutines and returns when
// all of them have finished. With one worker, or one task, everything
// runs on the calling goroutine.
//
// Tasks must be independent: Do gives no ordering guarantee between
// them, only that all have completed on return.
func Do(workers int, tasks ...func()) {
	if len(tasks) == 0 {
		return
	}
	if workers > len(tasks) {
		workers = len(tasks)
	}
	if workers <= 1 {
		for _, task := range tasks {
			task()
		}
		return
	}

	queue := make(chan func(), len(tasks))
	for _, task := range tasks {
		queue <- task
	}
	close(queue)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for task := range queue {
				task()
			}
		}()
	}
	wg.Wait()
}
