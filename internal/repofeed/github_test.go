package repofeed_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/MyOne00/portfolio/internal/repofeed"
)

var _ = Describe("GitHubLister", func() {
	var (
		ts      *httptest.Server
		handler http.HandlerFunc
	)

	BeforeEach(func() {
		handler = nil
		ts = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handler(w, r)
		}))
	})

	AfterEach(func() {
		ts.Close()
	})

	newLister := func(opts ...repofeed.GitHubOption) *repofeed.GitHubLister {
		opts = append(opts, repofeed.WithBaseURL(ts.URL))
		l, err := repofeed.NewGitHubLister(ts.Client(), opts...)
		Expect(err).NotTo(HaveOccurred())
		return l
	}

	It("requests the owner's repos sorted by update with page size 6", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			Expect(r.Method).To(Equal(http.MethodGet))
			Expect(r.URL.Path).To(Equal("/users/MyOne00/repos"))
			Expect(r.URL.Query().Get("sort")).To(Equal("updated"))
			Expect(r.URL.Query().Get("per_page")).To(Equal("6"))
			Expect(r.Header.Get("Authorization")).To(BeEmpty())
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `[]`)
		}

		repos, err := newLister().ListRecent(context.Background(), "MyOne00", repofeed.PageSize)
		Expect(err).NotTo(HaveOccurred())
		Expect(repos).To(BeEmpty())
	})

	It("sends the token when configured", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			defer GinkgoRecover()
			Expect(r.Header.Get("Authorization")).To(Equal("Bearer secret"))
			_, _ = fmt.Fprint(w, `[]`)
		}

		_, err := newLister(repofeed.WithToken("secret")).ListRecent(context.Background(), "MyOne00", 6)
		Expect(err).NotTo(HaveOccurred())
	})

	It("maps every field of the payload", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `[
				{
					"name": "dotfiles",
					"description": "my config",
					"html_url": "https://github.com/MyOne00/dotfiles",
					"homepage": "https://dotfiles.example",
					"stargazers_count": 3,
					"forks_count": 1,
					"language": "Shell",
					"topics": ["shell", "config"],
					"updated_at": "2025-03-04T05:06:07Z"
				},
				{
					"name": "bare",
					"html_url": "https://github.com/MyOne00/bare"
				}
			]`)
		}

		repos, err := newLister().ListRecent(context.Background(), "MyOne00", 6)
		Expect(err).NotTo(HaveOccurred())
		Expect(repos).To(HaveLen(2))

		Expect(repos[0].Name).To(Equal("dotfiles"))
		Expect(repos[0].Description).To(Equal("my config"))
		Expect(repos[0].URL).To(Equal("https://github.com/MyOne00/dotfiles"))
		Expect(repos[0].HomepageURL).To(Equal("https://dotfiles.example"))
		Expect(repos[0].Stars).To(Equal(3))
		Expect(repos[0].Forks).To(Equal(1))
		Expect(repos[0].Language).To(Equal("Shell"))
		Expect(repos[0].Topics).To(Equal([]string{"shell", "config"}))
		Expect(repos[0].UpdatedAt).NotTo(BeNil())
		Expect(repos[0].UpdatedAt.Year()).To(Equal(2025))

		Expect(repos[1].Description).To(BeEmpty())
		Expect(repos[1].HomepageURL).To(BeEmpty())
		Expect(repos[1].Stars).To(BeZero())
		Expect(repos[1].UpdatedAt).To(BeNil())
	})

	It("fails on a non-2xx status", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
		}

		_, err := newLister().ListRecent(context.Background(), "MyOne00", 6)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("failed to list repositories"))
	})

	It("fails on a malformed payload", func() {
		handler = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `{"not": "a list"`)
		}

		_, err := newLister().ListRecent(context.Background(), "MyOne00", 6)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an invalid base URL", func() {
		_, err := repofeed.NewGitHubLister(nil, repofeed.WithBaseURL("://bad"))
		Expect(err).To(HaveOccurred())
	})
})
