package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/http/render"
	"simpleguide/cmd/internal/utils"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	renderer, err := render.New()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer
	return e
}

// asUser stands in for the auth middleware.
func asUser(user *entity.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(utils.ContextUserKey, user)
			return next(c)
		}
	}
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
