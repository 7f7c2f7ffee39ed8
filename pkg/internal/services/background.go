package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const backgroundTaskTimeout = 30 * time.Second

var backgroundTasks sync.WaitGroup

// fireAndForget runs a collaborator call that must never fail the caller.
func fireAndForget(name string, fn func(ctx context.Context) error) {
	backgroundTasks.Add(1)
	go func() {
		defer backgroundTasks.Done()
		ctx, cancel := context.WithTimeout(context.Background(), backgroundTaskTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Warn().Err(err).Str("task", name).Msg("An error occurred when running background task...")
		}
	}()
}

// WaitBackgroundTasks blocks until every in flight background task finished.
func WaitBackgroundTasks() {
	backgroundTasks.Wait()
}
