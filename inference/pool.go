package inference

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jamesainslie/go-sbd/model"
)

// ErrPoolClosed is returned when acquiring from a closed pool.
var ErrPoolClosed = errors.New("inference: pool is closed")

// Pool hands out a fixed number of sessions over one shared, read-only
// model. Its size bounds how many texts are segmented at once.
type Pool struct {
	sessions chan *Session
	size     int
	mu       sync.Mutex
	closed   bool
}

// NewPool creates size sessions for m with the same settings. A size below
// one is treated as one.
func NewPool(m *model.Model, cfg Config, size int) (*Pool, error) {
	size = max(size, 1)
	p := &Pool{
		sessions: make(chan *Session, size),
		size:     size,
	}

	for i := range size {
		s, err := NewSession(m, cfg)
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("creating session %d: %w", i, err)
		}
		p.sessions <- s
	}
	return p, nil
}

// Acquire takes an idle session, waiting until one is released or ctx is
// done. It returns ErrPoolClosed once the pool is closed.
func (p *Pool) Acquire(ctx context.Context) (*Session, error) {
	select {
	case s, ok := <-p.sessions:
		if !ok {
			return nil, ErrPoolClosed
		}
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Do runs fn with a session and returns the session afterwards.
func (p *Pool) Do(ctx context.Context, fn func(*Session) error) error {
	s, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer p.Release(s)
	return fn(s)
}

// Release returns s to the pool. Sessions released after Close, or beyond
// the pool size, are closed instead.
func (p *Pool) Release(s *Session) {
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = s.Close()
		return
	}
	select {
	case p.sessions <- s:
	default:
		_ = s.Close()
	}
}

// Close closes all idle sessions. Sessions still out are closed when
// released.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sessions)
	p.mu.Unlock()

	var errs []error
	for session := range p.sessions {
		if err := session.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Size returns the number of sessions.
func (p *Pool) Size() int {
	return p.size
}
