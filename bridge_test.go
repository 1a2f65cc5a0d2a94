package funcmcp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeRunEcho(t *testing.T) {
	b := NewBridge()
	b.Start()
	defer b.Close()

	result, err := b.Run(context.Background(), func(ctx context.Context) (any, error) {
		return "pong", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "pong", result)
}

func TestBridgeRunPropagatesError(t *testing.T) {
	b := NewBridge()
	b.Start()
	defer b.Close()

	boom := errors.New("boom")
	_, err := b.Run(context.Background(), func(ctx context.Context) (any, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestBridgeRunBeforeStart(t *testing.T) {
	b := NewBridge()

	_, err := b.Run(context.Background(), func(ctx context.Context) (any, error) {
		return nil, nil
	})

	assert.Error(t, err)
}

func TestBridgeRunAfterClose(t *testing.T) {
	b := NewBridge()
	b.Start()
	b.Close()

	_, err := b.Run(context.Background(), func(ctx context.Context) (any, error) {
		return "unreachable", nil
	})

	assert.ErrorIs(t, err, ErrBridgeClosed)
}

func TestBridgeCloseIdempotent(t *testing.T) {
	b := NewBridge()
	b.Start()

	b.Close()
	assert.NotPanics(t, func() { b.Close() })
}

func TestBridgeCloseWithoutStart(t *testing.T) {
	b := NewBridge()
	assert.NotPanics(t, func() { b.Close() })
}

func TestBridgeSerializesTasks(t *testing.T) {
	b := NewBridge()
	b.Start()
	defer b.Close()

	var active, maxActive int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := b.Run(context.Background(), func(ctx context.Context) (any, error) {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				active--
				mu.Unlock()
				return fmt.Sprintf("task-%d", i), nil
			})
			require.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("task-%d", i), result)
		}(i)
	}
	wg.Wait()

	// Tasks run on a single loop, never concurrently.
	assert.Equal(t, 1, maxActive)
}

func TestBridgeRunHonorsContext(t *testing.T) {
	b := NewBridge()
	b.Start()
	defer b.Close()

	block := make(chan struct{})
	go func() {
		_, _ = b.Run(context.Background(), func(ctx context.Context) (any, error) {
			<-block
			return nil, nil
		})
	}()
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := b.Run(ctx, func(ctx context.Context) (any, error) {
		return nil, nil
	})
	close(block)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
