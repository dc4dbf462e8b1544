// Package repofeed loads the repositories shown in the projects grid, with a
// fixed demo list standing in whenever GitHub cannot be reached.
package repofeed

import (
	"context"
	"log/slog"
	"time"
)

const (
	PageSize             = 6
	DefaultFallbackDelay = 2 * time.Second
)

type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Result is either the live listing or the fallback list, never an error.
type Result struct {
	Source Source    `json:"source"`
	Repos  []Summary `json:"repos"`
}

// Load describes one completed load, for diagnostics.
type Load struct {
	Owner    string
	Source   Source
	Count    int
	Err      error
	Duration time.Duration
	At       time.Time
}

type Recorder interface {
	RecordLoad(ctx context.Context, load Load) error
}

// Sleeper waits d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration)

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

type Feed struct {
	lister        Lister
	owner         string
	fallbackDelay time.Duration
	sleep         Sleeper
	recorder      Recorder
	now           func() time.Time
}

type Option func(*Feed)

func WithFallbackDelay(d time.Duration) Option {
	return func(f *Feed) {
		f.fallbackDelay = d
	}
}

func WithSleeper(s Sleeper) Option {
	return func(f *Feed) {
		f.sleep = s
	}
}

func WithRecorder(r Recorder) Option {
	return func(f *Feed) {
		f.recorder = r
	}
}

func WithClock(now func() time.Time) Option {
	return func(f *Feed) {
		f.now = now
	}
}

func New(lister Lister, owner string, opts ...Option) *Feed {
	f := &Feed{
		lister:        lister,
		owner:         owner,
		fallbackDelay: DefaultFallbackDelay,
		sleep:         sleepCtx,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Feed) Owner() string {
	return f.owner
}

// Load makes a single request for the owner's repositories. Any failure is
// logged and answered with Fallback after the fallback delay; there is no
// retry.
func (f *Feed) Load(ctx context.Context) Result {
	start := f.now()

	repos, err := f.lister.ListRecent(ctx, f.owner, PageSize)
	if len(repos) > PageSize {
		repos = repos[:PageSize]
	}

	res := Result{Source: SourceLive, Repos: repos}
	if err != nil {
		slog.WarnContext(ctx, "GitHub API failed, showing demo data",
			"owner", f.owner,
			"error", err,
		)
		f.sleep(ctx, f.fallbackDelay)
		res = Result{Source: SourceFallback, Repos: Fallback()}
	} else {
		slog.DebugContext(ctx, "loaded repositories", "owner", f.owner, "count", len(repos))
	}

	f.record(ctx, Load{
		Owner:    f.owner,
		Source:   res.Source,
		Count:    len(res.Repos),
		Err:      err,
		Duration: f.now().Sub(start),
		At:       start,
	})
	return res
}

func (f *Feed) record(ctx context.Context, load Load) {
	if f.recorder == nil {
		return
	}
	if err := f.recorder.RecordLoad(ctx, load); err != nil {
		slog.WarnContext(ctx, "failed to record feed load", "error", err)
	}
}
