package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/MyOne00/portfolio/internal/repofeed"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubLister struct {
	repos []repofeed.Summary
	err   error
}

func (s stubLister) ListRecent(context.Context, string, int) ([]repofeed.Summary, error) {
	return s.repos, s.err
}

var errOffline = errors.New("dial tcp: lookup api.github.com: no such host")

type stubMailer struct {
	mu   sync.Mutex
	sent []contactForm
	err  error
}

func (m *stubMailer) Send(name, email, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, contactForm{FullName: name, Email: email, Message: message})
	return nil
}

// countingClock fires immediately n times, then never again.
type countingClock struct {
	mu sync.Mutex
	n  int
}

func (c *countingClock) After(time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.n <= 0 {
		return nil
	}
	c.n--
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

type testEnv struct {
	app    *App
	router *gin.Engine
	store  *Store
	mailer *stubMailer
	slept  []time.Duration
}

func testConfig() Config {
	return Config{
		Port:          "8080",
		GitHubOwner:   "MyOne00",
		FallbackDelay: repofeed.DefaultFallbackDelay,
		DBPath:        ":memory:",
		TemplateGlob:  "templates/*",
		StaticDir:     "./static",
		ImagesDir:     "./images",
		AdminUsername: "admin",
		AdminPassword: "s3cret",
	}
}

func newTestEnv(t *testing.T, lister repofeed.Lister, opts ...AppOption) *testEnv {
	t.Helper()

	ctx := context.Background()
	cfg := testConfig()

	store, err := OpenStore(ctx, cfg.DBPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	env := &testEnv{store: store, mailer: &stubMailer{}}
	feed := repofeed.New(lister, cfg.GitHubOwner,
		repofeed.WithFallbackDelay(cfg.FallbackDelay),
		repofeed.WithRecorder(store),
		repofeed.WithSleeper(func(_ context.Context, d time.Duration) {
			env.slept = append(env.slept, d)
		}),
	)

	opts = append([]AppOption{WithMailer(env.mailer)}, opts...)
	env.app = NewApp(ctx, cfg, store, feed, opts...)
	env.router = env.app.Router()
	t.Cleanup(env.app.Wait)
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return e.do(req)
}

func (e *testEnv) postForm(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return e.do(req)
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
