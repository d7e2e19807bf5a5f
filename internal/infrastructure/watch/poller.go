// Package watch runs periodic background polls, used to pick up lab
// results that arrive outside the request path.
package watch

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PollFunc performs one poll pass. Errors are logged, not fatal; the
// poller keeps ticking.
type PollFunc func(ctx context.Context) error

// Poller invokes a PollFunc on a fixed interval until stopped. Passes
// run sequentially, a slow pass delays the next tick rather than
// overlapping it.
type Poller struct {
	name     string
	interval time.Duration
	poll     PollFunc
	logger   *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewPoller creates a poller that calls poll every interval.
func NewPoller(name string, interval time.Duration, poll PollFunc, logger *zap.Logger) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		poll:     poll,
		logger:   logger.Named("watch"),
	}
}

// Start begins polling. The first pass runs immediately, subsequent
// passes on each tick. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = true
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.runLoop(ctx)

	p.logger.Info("Poller started",
		zap.String("name", p.name),
		zap.Duration("interval", p.interval),
	)

	return nil
}

// Stop cancels the poll loop and waits for the in-flight pass to finish,
// or returns early if ctx expires first.
func (p *Poller) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Poller stopped", zap.String("name", p.name))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning reports whether the poll loop is active.
func (p *Poller) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isRunning
}

func (p *Poller) runLoop(ctx context.Context) {
	defer p.wg.Done()

	p.runOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

func (p *Poller) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := p.poll(ctx); err != nil {
		p.logger.Warn("Poll pass failed",
			zap.String("name", p.name),
			zap.Error(err),
		)
	}
}
