package playback

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"cpu-scheduler/config"
)

type State string

const (
	Stopped State = "stopped"
	Playing State = "playing"
	Paused  State = "paused"
)

const DefaultStepDuration = 80 * time.Millisecond

var ErrAlreadyPlaying = errors.New("playback already in progress")

// Ticker is the tick source pacing a replay.
type Ticker interface {
	C() <-chan time.Time
	Reset(d time.Duration)
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time   { return t.t.C }
func (t timeTicker) Reset(d time.Duration) { t.t.Reset(d) }
func (t timeTicker) Stop()                 { t.t.Stop() }

func newTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

type Option func(*Controller)

// WithTicker replaces the wall-clock tick source.
func WithTicker(newTicker func(d time.Duration) Ticker) Option {
	return func(c *Controller) {
		c.newTicker = newTicker
	}
}

// Controller reveals precomputed frames one tick at a time. Pausing,
// resuming, stopping or changing speed only affects disclosure.
type Controller struct {
	mu        sync.Mutex
	frames    []Frame
	position  int
	state     State
	step      time.Duration
	minStep   time.Duration
	maxStep   time.Duration
	stopCh    chan struct{}
	stepCh    chan time.Duration
	newTicker func(d time.Duration) Ticker
}

func NewController(frames []Frame, cfg config.PlaybackConfig, opts ...Option) *Controller {
	c := &Controller{
		frames:    frames,
		state:     Stopped,
		minStep:   cfg.MinStep,
		maxStep:   cfg.MaxStep,
		stepCh:    make(chan time.Duration, 1),
		newTicker: newTimeTicker,
	}
	c.step = c.clamp(cfg.StepDuration)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Play emits the remaining frames, one per tick, and blocks until they are
// exhausted, Stop is called or ctx is done.
func (c *Controller) Play(ctx context.Context, emit func(Frame)) error {
	c.mu.Lock()
	if c.state != Stopped {
		c.mu.Unlock()
		return ErrAlreadyPlaying
	}
	c.state = Playing
	stopCh := make(chan struct{})
	c.stopCh = stopCh
	ticker := c.newTicker(c.step)
	c.mu.Unlock()
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Stop()
			return ctx.Err()
		case <-stopCh:
			return nil
		case step := <-c.stepCh:
			ticker.Reset(step)
		case <-ticker.C():
			frame, ok, done := c.advance()
			if ok {
				emit(frame)
			}
			if done {
				c.Stop()
				return nil
			}
		}
	}
}

// advance returns the next frame unless paused, and whether it was the last.
func (c *Controller) advance() (Frame, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Playing {
		return Frame{}, false, c.state == Stopped
	}
	if c.position >= len(c.frames) {
		return Frame{}, false, true
	}
	frame := c.frames[c.position]
	c.position++
	return frame, true, c.position >= len(c.frames)
}

func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Playing {
		c.state = Paused
	}
}

func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Paused {
		c.state = Playing
	}
}

// Toggle flips between Playing and Paused.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case Playing:
		c.state = Paused
	case Paused:
		c.state = Playing
	}
}

func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Stopped {
		return
	}
	c.state = Stopped
	close(c.stopCh)
}

// Rewind moves back to the first frame. It has no effect while playing.
func (c *Controller) Rewind() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Stopped {
		c.position = 0
	}
}

// SetStepDuration changes the pace, clamped to the configured bounds, and
// returns the duration actually applied.
func (c *Controller) SetStepDuration(d time.Duration) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = c.clamp(d)
	select {
	case <-c.stepCh:
	default:
	}
	c.stepCh <- c.step
	return c.step
}

func (c *Controller) StepDuration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Position is the number of frames already revealed.
func (c *Controller) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *Controller) clamp(d time.Duration) time.Duration {
	if d <= 0 {
		d = DefaultStepDuration
	}
	if c.minStep > 0 && d < c.minStep {
		return c.minStep
	}
	if c.maxStep > 0 && d > c.maxStep {
		return c.maxStep
	}
	return d
}
