// Package handlertest wires handlers onto a test router with token-less
// authentication.
package handlertest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/model"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/validator"
)

// Tokens maps bearer tokens straight to users.
type Tokens map[string]*model.User

func (t Tokens) Authenticate(_ context.Context, token string) (*model.User, error) {
	if user, ok := t[token]; ok {
		return user, nil
	}
	return nil, apperrors.Unauthorized("Given token not valid for any token type")
}

// Registrar is implemented by every resource handler.
type Registrar interface {
	RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware)
}

func NewRouter(t *testing.T, tokens Tokens, handlers ...Registrar) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validator.Setup())

	r := gin.New()
	api := r.Group("/api")
	auth := middleware.NewAuthMiddleware(tokens)
	for _, h := range handlers {
		h.RegisterRoutes(api, auth)
	}
	return r
}

// Do sends a JSON request; body may be nil.
func Do(r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Envelope is the decoded response body.
type Envelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func Decode(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}
