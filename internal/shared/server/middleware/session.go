package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	sessionIDKey = "pageSid"
	themeKey     = "theme"
	pageEventKey = "pageEvent"

	// ThemeCookie holds the persisted colour scheme.
	ThemeCookie  = "theme"
	ThemeDark    = "dark"
	ThemeLight   = "light"
	defaultTheme = ThemeDark
)

// Session stores the page session id and the theme preference in context.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sid := strings.TrimSpace(c.Query("sid")); sid != "" {
			c.Set(sessionIDKey, sid)
		}
		theme := defaultTheme
		if v, err := c.Cookie(ThemeCookie); err == nil && (v == ThemeLight || v == ThemeDark) {
			theme = v
		}
		c.Set(themeKey, theme)
		c.Next()
	}
}

// SessionIDFromContext fetches the page session id set by Session.
func SessionIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(sessionIDKey)
}

// ThemeFromContext fetches the theme set by Session.
func ThemeFromContext(c *gin.Context) string {
	if c == nil {
		return defaultTheme
	}
	if theme := c.GetString(themeKey); theme != "" {
		return theme
	}
	return defaultTheme
}

// SetPageEvent records the dispatched event name for the request log.
func SetPageEvent(c *gin.Context, name string) {
	c.Set(pageEventKey, name)
}

// ToggleTheme flips the theme cookie.
func ToggleTheme(theme string) string {
	if theme == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
