package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jpcostan/rise-and-move-ios/internal/observability/logging"
)

// PanicRecoveryGin logs and re-panics; gin.Recovery must sit outside it.
func PanicRecoveryGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				ctx := c.Request.Context()

				slog.ErrorContext(ctx, "panic recovered",
					slog.String("event", "api.panic"),
					slog.String("path", c.Request.URL.Path),
					slog.String("request_id", logging.RequestIDFrom(ctx)),
					slog.Any("error", rec),
				)

				c.AbortWithStatus(http.StatusInternalServerError)

				panic(rec)
			}
		}()

		c.Next()
	}
}
