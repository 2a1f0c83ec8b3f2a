package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
)

// NoRoute answers unknown paths with the standard error envelope.
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		httputil.RespondWithError(c, apperrors.New(apperrors.ErrNotFound, "Not found.", nil))
	}
}

func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed,
			httputil.NewErrorResponse("Method \""+c.Request.Method+"\" not allowed."))
	}
}

// ErrorHandler flushes errors attached with c.Error when the handler did
// not write a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		httputil.RespondWithError(c, c.Errors.Last().Err)
	}
}
