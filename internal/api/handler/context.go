package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devlink/devlink-api/internal/api/middleware"
	"github.com/devlink/devlink-api/internal/core/domain"
)

// ctxActor extracts the actor injected by the Auth middleware and
// fast-fails before any service call when it is absent. Absence on a
// protected route means a wiring mistake, not a client error, but the
// request is still rejected with 401 rather than acting unauthenticated.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return actor, nil
}
