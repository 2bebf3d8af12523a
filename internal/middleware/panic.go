package middleware

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	commonErrors "github.com/jithpillai/zstore/internal/common/errors"
	commonHttp "github.com/jithpillai/zstore/internal/common/http"
	commonOtel "github.com/jithpillai/zstore/internal/common/otel"
)

func RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, span := commonOtel.Tracer.Start(r.Context(), "RecoverPanic")
		defer span.End()

		logger := zerolog.Ctx(c).With().Logger()
		defer func() {
			if rec := recover(); rec != nil {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", rec)
				}
				logger.Error().Err(err).Stack().Msg("recovered from panic")
				commonErrors.HandleError(err, span)
				commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusInternalServerError,
					"message":    "Internal Server Error",
				})
				return
			}
		}()

		next.ServeHTTP(w, r.WithContext(c))
	})
}
