package repofeed_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/MyOne00/portfolio/internal/repofeed"
)

type stubLister struct {
	repos []repofeed.Summary
	err   error
	calls int
}

func (s *stubLister) ListRecent(_ context.Context, owner string, limit int) ([]repofeed.Summary, error) {
	s.calls++
	Expect(owner).To(Equal("MyOne00"))
	Expect(limit).To(Equal(repofeed.PageSize))
	return s.repos, s.err
}

type memRecorder struct {
	loads []repofeed.Load
	err   error
}

func (m *memRecorder) RecordLoad(_ context.Context, load repofeed.Load) error {
	m.loads = append(m.loads, load)
	return m.err
}

var _ = Describe("Feed", func() {
	var (
		slept    []time.Duration
		recorder *memRecorder
		sleeper  repofeed.Sleeper
	)

	BeforeEach(func() {
		slept = nil
		recorder = &memRecorder{}
		sleeper = func(_ context.Context, d time.Duration) {
			slept = append(slept, d)
		}
	})

	Context("when the fetch fails", func() {
		It("returns the six demo entries in fixed order after the delay", func() {
			lister := &stubLister{err: errors.New("network down")}
			feed := repofeed.New(lister, "MyOne00",
				repofeed.WithSleeper(sleeper),
				repofeed.WithRecorder(recorder),
			)

			res := feed.Load(context.Background())

			Expect(res.Source).To(Equal(repofeed.SourceFallback))
			Expect(res.Repos).To(Equal(repofeed.Fallback()))
			names := make([]string, 0, len(res.Repos))
			for _, r := range res.Repos {
				names = append(names, r.Name)
			}
			Expect(names).To(Equal([]string{
				"portfolio-website",
				"task-manager-app",
				"weather-dashboard",
				"python-data-analyzer",
				"css-animations-collection",
				"node-api-starter",
			}))
			Expect(slept).To(Equal([]time.Duration{repofeed.DefaultFallbackDelay}))
			Expect(lister.calls).To(Equal(1))

			Expect(recorder.loads).To(HaveLen(1))
			Expect(recorder.loads[0].Source).To(Equal(repofeed.SourceFallback))
			Expect(recorder.loads[0].Count).To(Equal(6))
			Expect(recorder.loads[0].Err).To(MatchError("network down"))
		})

		It("waits for the configured delay with the real sleeper", func() {
			lister := &stubLister{err: errors.New("boom")}
			feed := repofeed.New(lister, "MyOne00", repofeed.WithFallbackDelay(20*time.Millisecond))

			start := time.Now()
			res := feed.Load(context.Background())

			Expect(res.Source).To(Equal(repofeed.SourceFallback))
			Expect(time.Since(start)).To(BeNumerically(">=", 20*time.Millisecond))
		})

		It("stops waiting when the context ends", func() {
			lister := &stubLister{err: errors.New("boom")}
			feed := repofeed.New(lister, "MyOne00", repofeed.WithFallbackDelay(time.Hour))

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			res := feed.Load(ctx)

			Expect(res.Source).To(Equal(repofeed.SourceFallback))
			Expect(res.Repos).To(HaveLen(6))
		})
	})

	Context("when the fetch succeeds", func() {
		It("returns the live repos without waiting", func() {
			live := []repofeed.Summary{{Name: "a"}, {Name: "b"}}
			feed := repofeed.New(&stubLister{repos: live}, "MyOne00",
				repofeed.WithSleeper(sleeper),
				repofeed.WithRecorder(recorder),
			)

			res := feed.Load(context.Background())

			Expect(res.Source).To(Equal(repofeed.SourceLive))
			Expect(res.Repos).To(Equal(live))
			Expect(slept).To(BeEmpty())
			Expect(recorder.loads).To(HaveLen(1))
			Expect(recorder.loads[0].Err).NotTo(HaveOccurred())
			Expect(recorder.loads[0].Count).To(Equal(2))
		})

		It("treats an empty listing as a live result", func() {
			feed := repofeed.New(&stubLister{}, "MyOne00", repofeed.WithSleeper(sleeper))

			res := feed.Load(context.Background())

			Expect(res.Source).To(Equal(repofeed.SourceLive))
			Expect(res.Repos).To(BeEmpty())
		})

		It("ignores recorder failures", func() {
			recorder.err = errors.New("disk full")
			feed := repofeed.New(&stubLister{repos: []repofeed.Summary{{Name: "a"}}}, "MyOne00",
				repofeed.WithRecorder(recorder),
			)

			res := feed.Load(context.Background())
			Expect(res.Repos).To(HaveLen(1))
		})
	})
})
