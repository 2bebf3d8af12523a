package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jithpillai/zstore/internal/common"
	inErrors "github.com/jithpillai/zstore/internal/common/errors"
	commonHttp "github.com/jithpillai/zstore/internal/common/http"
	"github.com/jithpillai/zstore/internal/log"
)

// Auth verifies the bearer token and attaches the parsed token to the
// request context. secretKey comes from the service config.
func Auth(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).
				With().
				Str(log.KeyTag, "middleware Auth").
				Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get("Authorization")
			if authorization == "" {
				logger.Error().
					Err(inErrors.ErrEmptyAuth).
					Msg(inErrors.ErrEmptyAuth.Error())
				commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrEmptyAuth.Error(),
				})
				return
			}

			token := strings.TrimPrefix(authorization, "Bearer ")
			jwtToken, err := common.VerifyToken(c, token, secretKey)
			if err != nil {
				logger.Error().
					Err(inErrors.ErrTokenInvalid).
					Msg(inErrors.ErrTokenInvalid.Error())
				commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
					"status":     "failed",
					"statusCode": http.StatusUnauthorized,
					"message":    inErrors.ErrTokenInvalid.Error(),
				})
				return
			}

			c = common.AttachJwtTokenToContext(c, jwtToken)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}

// Admin gates a subrouter to tokens carrying the admin claim. Must run
// after Auth.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context()).
			With().
			Str(log.KeyTag, "middleware Admin").
			Logger()
		c := logger.WithContext(r.Context())

		if !common.IsAdminFromJwtToken(c) {
			logger.Error().
				Err(inErrors.ErrAdminOnly).
				Msg(inErrors.ErrAdminOnly.Error())
			commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
				"status":     "failed",
				"statusCode": http.StatusUnauthorized,
				"message":    inErrors.ErrAdminOnly.Error(),
			})
			return
		}

		next.ServeHTTP(w, r.WithContext(c))
	})
}
