package usecase

import (
	"context"
	"sync"
)

// background runs fire-and-forget work that must outlive the request that
// started it. Wait blocks until all of it has finished.
type background struct {
	wg sync.WaitGroup
}

func (b *background) Go(ctx context.Context, fn func(ctx context.Context)) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn(context.WithoutCancel(ctx))
	}()
}

func (b *background) Wait() {
	b.wg.Wait()
}
