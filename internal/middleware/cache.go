package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type CacheConfig struct {
	MaxAge  int
	Private bool
	Vary    []string
}

// DefaultMediaCacheConfig suits uploaded pictures: names are random so a
// file never changes once written.
func DefaultMediaCacheConfig() CacheConfig {
	return CacheConfig{
		MaxAge: 86400,
	}
}

// CacheControl overrides the no-store default for static content.
func CacheControl(config CacheConfig) gin.HandlerFunc {
	directives := []string{"public"}
	if config.Private {
		directives[0] = "private"
	}
	directives = append(directives, "max-age="+strconv.Itoa(config.MaxAge))
	value := strings.Join(directives, ", ")
	vary := strings.Join(config.Vary, ", ")

	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		if vary != "" {
			c.Header("Vary", vary)
		}
		c.Next()
	}
}
