package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/meshproxy/engine/core"
)

// RenderCommand runs on the render goroutine.
type RenderCommand func() error

var ErrNegativeChannelSize = fmt.Errorf("attempting to create render command queue with a negative channel size")

/**
 * @brief Hands work from the game goroutine to the single render goroutine.
 * Commands run in the order they were enqueued.
 */
type RenderCommandQueue struct {
	commands chan RenderCommand
	wg       sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

func NewRenderCommandQueue(channelSize int) (*RenderCommandQueue, error) {
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}
	q := &RenderCommandQueue{
		commands: make(chan RenderCommand, channelSize),
	}
	q.start()
	return q, nil
}

func (q *RenderCommandQueue) start() {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		for cmd := range q.commands {
			if err := cmd(); err != nil {
				core.LogError("render command failed: %s", err)
			}
		}
	}()
}

/**
 * @brief Queues cmd for the render goroutine.
 * @return ErrRendererStopped once the queue is shut down.
 */
func (q *RenderCommandQueue) Enqueue(cmd RenderCommand) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.stopped {
		return core.ErrRendererStopped
	}
	q.commands <- cmd
	return nil
}

// Flush blocks until every command enqueued before the call has run.
func (q *RenderCommandQueue) Flush() error {
	done := make(chan struct{})
	if err := q.Enqueue(func() error {
		close(done)
		return nil
	}); err != nil {
		return err
	}
	<-done
	return nil
}

// Call runs cmd on the render goroutine and waits for its result.
func (q *RenderCommandQueue) Call(cmd RenderCommand) error {
	result := make(chan error, 1)
	if err := q.Enqueue(func() error {
		result <- cmd()
		return nil
	}); err != nil {
		return err
	}
	return <-result
}

/**
 * @brief Runs what is already queued, then stops the render goroutine.
 */
func (q *RenderCommandQueue) Shutdown() error {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return nil
	}
	q.stopped = true
	close(q.commands)
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}
