package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	themeCookie = "theme"
	themeLight  = "light"
	themeDark   = "dark"

	themeMaxAge = 365 * 24 * 3600
)

// themeFrom reads the stored preference; anything but "dark" is light.
func themeFrom(c *gin.Context) string {
	if v, err := c.Cookie(themeCookie); err == nil && v == themeDark {
		return themeDark
	}
	return themeLight
}

func nextTheme(theme string) string {
	if theme == themeDark {
		return themeLight
	}
	return themeDark
}

func themeIcon(theme string) string {
	if theme == themeDark {
		return "☀️"
	}
	return "🌙"
}

func toggleTheme(c *gin.Context) {
	theme := nextTheme(themeFrom(c))
	c.SetCookie(themeCookie, theme, themeMaxAge, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{
		"theme": theme,
		"icon":  themeIcon(theme),
	})
}
