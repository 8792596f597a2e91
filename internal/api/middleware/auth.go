package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devlink/devlink-api/internal/api/metrics"
	"github.com/devlink/devlink-api/internal/core/domain"
	"github.com/devlink/devlink-api/internal/core/ports"
)

// actorIDKey is the echo context key under which Auth stores the
// resolved actor's subject id.
const actorIDKey = "actor_id"

// uniformMsg is the only authentication failure message a client ever
// sees. Distinguishing a forged credential from an expired one would
// hand an attacker an oracle, so the sub-reason stays in the logs.
const uniformMsg = "authentication required"

// Auth extracts the bearer credential, verifies it and injects the
// resolved actor into the request context. Requests without a credential
// are rejected before the token service is consulted.
func Auth(tokens ports.TokenService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				metrics.CredentialsRejectedTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, uniformMsg)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.CredentialsRejectedTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, uniformMsg)
			}

			actor, err := tokens.Verify(parts[1])
			if err != nil {
				reason := "invalid"
				var authErr *domain.AuthError
				if errors.As(err, &authErr) {
					reason = string(authErr.Kind)
				}
				metrics.CredentialsRejectedTotal.WithLabelValues(reason).Inc()
				log.Debug().
					Str("reason", reason).
					Str("path", c.Path()).
					Msg("credential rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, uniformMsg)
			}

			c.Set(actorIDKey, actor.SubjectID)
			return next(c)
		}
	}
}

// ActorFromContext returns the actor injected by Auth. The boolean is
// false on routes where the middleware did not run.
func ActorFromContext(c echo.Context) (domain.Actor, bool) {
	id, _ := c.Get(actorIDKey).(string)
	if id == "" {
		return domain.Actor{}, false
	}
	return domain.Actor{SubjectID: id}, true
}
