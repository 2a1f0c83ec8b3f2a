// Package handler holds the request plumbing shared by the resource handlers.
package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/model"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/httputil"
	"github.com/jwalitptl/hospital-api/pkg/validator"
)

const ProfilePictureField = "profile_picture"

// Actor is the authenticated user, nil on public routes.
func Actor(c *gin.Context) *model.User {
	return middleware.CurrentUser(c)
}

// ParamID parses a uuid path parameter. A malformed id cannot name a row,
// so it is answered like a missing one.
func ParamID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httputil.RespondWithError(c, apperrors.New(apperrors.ErrNotFound, "Not found.", nil))
		return uuid.Nil, false
	}
	return id, true
}

// Bind decodes the body by content type and validates it. An empty body
// still runs validation so required fields are reported.
func Bind(c *gin.Context, obj interface{}) bool {
	return check(c, obj, c.ShouldBind(obj))
}

// BindJSON is Bind for endpoints that only accept JSON.
func BindJSON(c *gin.Context, obj interface{}) bool {
	return check(c, obj, c.ShouldBindJSON(obj))
}

func check(c *gin.Context, obj interface{}, err error) bool {
	if errors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(obj)
	}
	if err != nil {
		httputil.RespondWithError(c, validator.Translate(err))
		return false
	}
	return true
}

// Upload opens an optional multipart file. The returned reader is nil when
// the field is absent or the request is not multipart.
func Upload(c *gin.Context, field string) (io.ReadCloser, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		httputil.RespondWithError(c, apperrors.FieldError(field, "The submitted data was not a file. Check the encoding type on the form."))
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		httputil.RespondWithError(c, apperrors.Internal(err))
		return nil, false
	}
	return f, true
}

// Reader adapts an optional upload to the io.Reader the services accept,
// keeping a missing file as a nil interface.
func Reader(rc io.ReadCloser) io.Reader {
	if rc == nil {
		return nil
	}
	return rc
}

// QueryUUID reads an optional uuid filter.
func QueryUUID(c *gin.Context, key string) (*uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httputil.RespondWithError(c, apperrors.FieldError(key, "Must be a valid UUID."))
		return nil, false
	}
	return &id, true
}

// QueryBool reads an optional boolean filter.
func QueryBool(c *gin.Context, key string) (*bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		httputil.RespondWithError(c, apperrors.FieldError(key, "Must be a valid boolean."))
		return nil, false
	}
	return &v, true
}
