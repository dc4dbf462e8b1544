package main

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MyOne00/portfolio/internal/logger"
	"github.com/MyOne00/portfolio/internal/repofeed"
	"github.com/MyOne00/portfolio/internal/typewriter"
)

// App holds everything the handlers share.
type App struct {
	cfg    Config
	store  *Store
	feed   *repofeed.Feed
	admin  *adminAuth
	mailer Mailer
	clock  typewriter.Clock
	now    func() time.Time

	ctx context.Context
	wg  sync.WaitGroup
}

type AppOption func(*App)

func WithMailer(m Mailer) AppOption {
	return func(app *App) {
		app.mailer = m
	}
}

func WithTypewriterClock(c typewriter.Clock) AppOption {
	return func(app *App) {
		app.clock = c
	}
}

func WithNow(now func() time.Time) AppOption {
	return func(app *App) {
		app.now = now
	}
}

func NewApp(ctx context.Context, cfg Config, store *Store, feed *repofeed.Feed, opts ...AppOption) *App {
	app := &App{
		cfg:    cfg,
		store:  store,
		feed:   feed,
		admin:  newAdminAuth(cfg),
		mailer: &smtpMailer{cfg: cfg.SMTP},
		now:    time.Now,
		ctx:    ctx,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// background runs fn outside the request; Wait blocks until all such work is done.
func (app *App) background(fn func()) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		fn()
	}()
}

func (app *App) Wait() {
	app.wg.Wait()
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-ID", reqID)

		l := slog.Default().With("request_id", reqID)
		c.Request = c.Request.WithContext(logger.With(c.Request.Context(), l))

		start := time.Now()
		c.Next()

		l.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
		)
	}
}

// Router builds the gin engine with every route of the site.
func (app *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), app.visitorTrackingMiddleware())
	r.LoadHTMLGlob(app.cfg.TemplateGlob)

	r.Static("/images", app.cfg.ImagesDir)
	r.Static("/static", app.cfg.StaticDir)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/", func(c *gin.Context) {
		theme := themeFrom(c)
		c.HTML(http.StatusOK, "index.html", gin.H{
			"aboutMeContent": AboutMe,
			"techBubbles":    TechBubbles,
			"heroPhrase":     HeroPhrases[0],
			"timeline":       Timeline,
			"stats":          Stats,
			"owner":          app.feed.Owner(),
			"theme":          theme,
			"dark":           theme == themeDark,
			"themeIcon":      themeIcon(theme),
		})
	})

	// HTMX fragment with the project cards
	r.GET("/projects", func(c *gin.Context) {
		res := app.feed.Load(c.Request.Context())
		c.HTML(http.StatusOK, "projects.html", gin.H{
			"source": res.Source,
			"cards":  repofeed.BuildCards(res.Repos),
		})
	})

	r.GET("/api/repos", func(c *gin.Context) {
		c.JSON(http.StatusOK, app.feed.Load(c.Request.Context()))
	})

	r.GET("/typewriter/:name", app.typewriterStream)
	r.POST("/theme/toggle", toggleTheme)

	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Kontakt",
		})
	})
	r.POST("/contact", app.handleContact)

	app.setupAdminRoutes(r)
	return r
}
