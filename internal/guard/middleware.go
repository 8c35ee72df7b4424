package guard

import (
	"errors"
	"net/http"

	"ofertare-gateway/internal/pkg/response"
	"ofertare-gateway/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionContextKey = "gateway_session"

// Middleware is the request-interception gate: it runs before any handler,
// evaluates the route guard and either lets the request through with the
// session state stashed in the context, or redirects.
func Middleware(g *Guard, store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := store.Read(c.Request)
		corrupt := errors.Is(err, session.ErrCorrupted)
		if err != nil && !corrupt {
			// A store outage is not a malformed session; clearing it here
			// would log out users over a transient failure.
			logger.Error("session read failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			response.Error(c, http.StatusBadGateway, "session store unavailable", err)
			return
		}

		decision := g.Evaluate(state, corrupt, c.Request.URL.Path, c.Request.URL.Query())

		if decision.ClearSession {
			if err := store.Clear(c.Writer, c.Request); err != nil {
				logger.Error("session clear failed", zap.Error(err))
			}
		}

		switch decision.Action {
		case Allow:
			c.Set(sessionContextKey, state)
			c.Next()
		case RedirectLogin, RedirectUnauthorized, Redirect:
			c.Redirect(http.StatusFound, decision.Target)
			c.Abort()
		}
	}
}

// SessionFromContext returns the session state stashed by the middleware.
func SessionFromContext(c *gin.Context) session.State {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return session.State{}
	}
	state, ok := v.(session.State)
	if !ok {
		return session.State{}
	}
	return state
}
