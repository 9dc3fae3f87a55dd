package posture

import (
	"context"
	"sync"
)

// forEach runs fn for every index concurrently, bounded by limit workers.
// It returns after all started tasks finished; once ctx is cancelled no
// further tasks are started.
func forEach(ctx context.Context, limit uint, n int, fn func(i int)) {
	if limit == 0 {
		limit = 1
	}

	sem := make(chan struct{}, limit)

	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			wg.Wait()

			return
		case sem <- struct{}{}:
		}

		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			fn(i)
		}(i)
	}

	wg.Wait()
}
