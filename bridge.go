package funcmcp

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// defaultJoinTimeout bounds how long Close waits for the loop goroutine.
const defaultJoinTimeout = 5 * time.Second

// Task is one unit of work executed on a bridge loop. The context it
// receives belongs to the loop and is canceled when the bridge closes.
type Task func(ctx context.Context) (any, error)

type taskResult struct {
	value any
	err   error
}

type bridgeTask struct {
	run  Task
	done chan taskResult
}

// Bridge owns the single background goroutine that serializes all server
// I/O for one connection. Transports pin subprocess or socket I/O to one
// owner; invoking them from arbitrary goroutines risks corrupted
// multiplexing, so every protocol operation for a connection funnels
// through its bridge.
//
// Callers on any goroutine submit work with Run and block until the loop
// has executed it. A bridge is closed exactly once, idempotently; Run
// after Close fails fast with ErrBridgeClosed.
type Bridge struct {
	log *slog.Logger

	tasks   chan *bridgeTask
	closing chan struct{} // closed by Close; stops the loop
	done    chan struct{} // closed when the loop goroutine has exited

	started   atomic.Bool
	startOnce sync.Once
	closeOnce sync.Once

	joinTimeout time.Duration
}

// NewBridge creates a bridge. The loop goroutine is not spawned until
// Start is called.
func NewBridge() *Bridge {
	return &Bridge{
		log:         slog.Default(),
		tasks:       make(chan *bridgeTask),
		closing:     make(chan struct{}),
		done:        make(chan struct{}),
		joinTimeout: defaultJoinTimeout,
	}
}

// Start spawns the loop goroutine and blocks until the loop is running,
// so work can never be submitted before the loop exists. Calling Start
// again is a no-op.
func (b *Bridge) Start() {
	b.startOnce.Do(func() {
		ready := make(chan struct{})
		go b.loop(ready)
		<-ready
		b.started.Store(true)
	})
}

func (b *Bridge) loop(ready chan<- struct{}) {
	defer close(b.done)

	// Loop-owned context: canceled on close so in-flight server calls
	// abort instead of outliving the connection.
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-b.closing
		cancel()
	}()

	close(ready)
	for {
		select {
		case <-b.closing:
			return
		case t := <-b.tasks:
			value, err := t.run(ctx)
			t.done <- taskResult{value: value, err: err}
		}
	}
}

// Run hands the task to the loop and blocks the calling goroutine until
// it completes. Task errors propagate to the caller unchanged; the bridge
// never wraps or retries. Run fails with ErrBridgeClosed if the bridge is
// closed before the task was picked up, or closed mid-wait without the
// task having produced a result.
func (b *Bridge) Run(ctx context.Context, task Task) (any, error) {
	if !b.started.Load() {
		return nil, errBridgeNotStarted
	}
	t := &bridgeTask{run: task, done: make(chan taskResult, 1)}

	select {
	case b.tasks <- t:
	case <-b.closing:
		return nil, ErrBridgeClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case r := <-t.done:
		return r.value, r.err
	case <-b.done:
		// The loop exited; prefer a result when the task finished first.
		select {
		case r := <-t.done:
			return r.value, r.err
		default:
			return nil, ErrBridgeClosed
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops the loop and joins it with a bounded wait. A second Close
// is a no-op. Failing to join within the bound is logged and treated as
// best-effort; it is never fatal to the owning process.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() {
		close(b.closing)
		if !b.started.Load() {
			return
		}
		select {
		case <-b.done:
		case <-time.After(b.joinTimeout):
			b.log.Warn("bridge loop did not exit within join timeout",
				"timeout", b.joinTimeout)
		}
	})
}
