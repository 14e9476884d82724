package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"simpleguide/cmd/internal/domain/entity"
	"simpleguide/cmd/internal/utils"
	"simpleguide/cmd/internal/utils/apierror"
)

type UserRepository interface {
	FindBySub(sub string) (*entity.User, error)
}

type AuthMiddlewareConfig struct {
	UserRepo UserRepository

	// ParseToken defaults to utils.ParseTokenDataCtx.
	ParseToken utils.TokenParser
}

// NewAuthMiddleware resolves the staff account behind the bearer token and
// stores it under utils.ContextUserKey.
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	parse := cfg.ParseToken
	if parse == nil {
		parse = utils.ParseTokenDataCtx
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := parse(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			user, err := cfg.UserRepo.FindBySub(tokenData.Sub)
			if err != nil {
				log.Errorf("failed to resolve user for sub %s: %v", tokenData.Sub, err)
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if user == nil {
				// Cognito knows the account but nobody registered it here
				return c.JSON(http.StatusUnauthorized, apierror.IDPUserNotFoundError)
			}

			if !user.Active {
				return c.JSON(http.StatusForbidden, apierror.MissingAccessError)
			}

			c.Set(utils.ContextUserKey, user)
			return next(c)
		}
	}
}
