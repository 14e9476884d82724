package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"simpleguide/cmd/internal/utils/apierror"
)

const healthTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type DefaultUtilRoute struct {
	DB Pinger
}

func NewUtilRoute(db Pinger) *DefaultUtilRoute {
	return &DefaultUtilRoute{DB: db}
}

// Health backs the Docker Compose healthcheck.
func (u *DefaultUtilRoute) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	if err := u.DB.PingContext(ctx); err != nil {
		log.Errorf("health check failed: %v", err)
		return c.JSON(http.StatusServiceUnavailable, apierror.ServiceUnavailable)
	}
	return c.String(http.StatusOK, "OK")
}
