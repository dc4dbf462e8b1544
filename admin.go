// admin.go - privacy-conscious visitor tracking and the admin dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MyOne00/portfolio/internal/logger"
)

const adminCookie = "admin_token"

type adminAuth struct {
	token    string
	salt     string
	username string
	password string
}

func newAdminAuth(cfg Config) *adminAuth {
	a := &adminAuth{
		token:    rand.Text(),
		salt:     rand.Text(),
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
	}

	// Default credentials for development only.
	if a.username == "" {
		a.username = "admin"
		if gin.Mode() == gin.DebugMode {
			slog.Warn("using default admin username, set ADMIN_USERNAME")
		}
	}
	if a.password == "" {
		a.password = "admin123"
		if gin.Mode() == gin.DebugMode {
			slog.Warn("using default admin password, set ADMIN_PASSWORD")
		}
	}
	return a
}

// hashIP keeps IPs out of storage; the salt lives only for the process, so
// hashes are consistent per IP within one run.
func (a *adminAuth) hashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(ip + a.salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func untrackedPath(path string) bool {
	for _, prefix := range []string{"/static/", "/images/", "/admin/", "/favicon", "/privacy", "/typewriter/", "/health"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (app *App) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if untrackedPath(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		v := VisitorMetric{
			HashedIP:  app.admin.hashIP(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: app.now(),
		}
		// Shutdown cancels app.ctx while these writes may still be pending.
		ctx := context.WithoutCancel(app.ctx)
		app.background(func() {
			if err := app.store.RecordVisit(ctx, v); err != nil {
				logger.From(ctx).Error("failed to record visitor", "error", err)
			}
		})
		c.Next()
	}
}

func (app *App) cleanupOldVisitorData() {
	n, err := app.store.CleanupVisitors(app.ctx, app.now())
	if err != nil {
		logger.From(app.ctx).Error("failed to clean up visitor data", "error", err)
		return
	}
	if n > 0 {
		logger.From(app.ctx).Info("privacy cleanup removed old visitor records", "count", n)
	}
}

func (app *App) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title": "Datenschutz",
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		log := logger.From(c.Request.Context())
		if app.admin.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			c.SetCookie(adminCookie, app.admin.token, 3600*24, "/admin", "", false, true)
			log.Info("admin login successful", "client", app.admin.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}

		log.Warn("failed admin login attempt", "client", app.admin.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(app.admin.middleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := app.store.Stats(c.Request.Context(), app.now())
		if err != nil {
			logger.From(c.Request.Context()).Error("failed to load admin stats", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
			"owner": app.feed.Owner(),
		})
	})

	adminGroup.GET("/visitors", func(c *gin.Context) {
		visitors, err := app.store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			logger.From(c.Request.Context()).Error("failed to load visitors", "error", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load visitors",
			})
			return
		}

		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"visitors": visitors,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := app.store.Stats(c.Request.Context(), app.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/api/feed", func(c *gin.Context) {
		loads, err := app.store.RecentLoads(c.Request.Context(), 100)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"loads": loads})
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		app.background(app.cleanupOldVisitorData)
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := app.store.Stats(c.Request.Context(), app.now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=admin-stats-"+app.now().Format(time.DateOnly)+".json")
		logger.From(c.Request.Context()).Info("admin stats exported", "client", app.admin.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})
}
