// Package typewriter drives the type-and-delete text animation used on the
// hero and projects sections.
package typewriter

import (
	"context"
	"errors"
	"time"
)

const (
	TypeDelay        = 100 * time.Millisecond
	DeleteDelay      = 50 * time.Millisecond
	PauseBeforeErase = 2000 * time.Millisecond
	PauseBeforeNext  = 500 * time.Millisecond
)

var ErrNoPhrases = errors.New("typewriter: phrase list is empty")

// State is the position of the animation. It is treated as a value; Step
// never mutates its input.
type State struct {
	PhraseIndex int
	CharCount   int
	Deleting    bool
}

// Frame is the outcome of one tick.
type Frame struct {
	State State
	Text  string
	Delay time.Duration
}

// Step advances s by one tick over phrases. phrases must be non-empty and
// s must satisfy 0 <= CharCount <= len(phrases[PhraseIndex]).
func Step(phrases [][]rune, s State) Frame {
	phrase := phrases[s.PhraseIndex]
	next := s
	var delay time.Duration

	switch {
	case !s.Deleting && s.CharCount < len(phrase):
		next.CharCount++
		delay = TypeDelay
		if next.CharCount == len(phrase) {
			next.Deleting = true
			delay = PauseBeforeErase
		}
	case s.Deleting && s.CharCount > 0:
		next.CharCount--
		delay = DeleteDelay
		if next.CharCount == 0 {
			next.Deleting = false
			next.PhraseIndex = (s.PhraseIndex + 1) % len(phrases)
			delay = PauseBeforeNext
		}
	case !s.Deleting:
		// Empty phrase: nothing to type.
		next.Deleting = true
		delay = PauseBeforeErase
	default:
		next.Deleting = false
		next.PhraseIndex = (s.PhraseIndex + 1) % len(phrases)
		delay = PauseBeforeNext
	}

	return Frame{
		State: next,
		Text:  string(phrases[next.PhraseIndex][:next.CharCount]),
		Delay: delay,
	}
}

// Sink receives every text the engine displays.
type Sink interface {
	Display(text string)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(text string)

func (f SinkFunc) Display(text string) { f(text) }

// Clock schedules the next tick.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

type Engine struct {
	phrases [][]rune
	sink    Sink
	clock   Clock
	state   State
}

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

func New(phrases []string, sink Sink, opts ...Option) (*Engine, error) {
	if len(phrases) == 0 {
		return nil, ErrNoPhrases
	}

	e := &Engine{
		phrases: make([][]rune, len(phrases)),
		sink:    sink,
		clock:   realClock{},
	}
	for i, p := range phrases {
		e.phrases[i] = []rune(p)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Tick applies one transition, displays the text and returns the delay
// before the next tick.
func (e *Engine) Tick() time.Duration {
	f := Step(e.phrases, e.state)
	e.state = f.State
	if e.sink != nil {
		e.sink.Display(f.Text)
	}
	return f.Delay
}

func (e *Engine) State() State {
	return e.state
}

// Run ticks until ctx is done. The first tick happens immediately.
func (e *Engine) Run(ctx context.Context) error {
	for {
		delay := e.Tick()
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.clock.After(delay):
		}
	}
}
