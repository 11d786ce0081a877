package internal

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"
)

func GenerateId() string {
	return uuid.Must(uuid.NewRandom()).String()
}

// LaunchContext creates a context that's cancelled when an os signal
// is received, so components can tie their lifetime to it
func LaunchContext(wg *sync.WaitGroup, osSignal chan os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()

		close(started)
		select {
		case <-ctx.Done():
		case <-osSignal:
			cancel()
		}
	}()
	<-started
	return ctx, cancel
}
