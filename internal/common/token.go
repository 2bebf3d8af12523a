package common

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jithpillai/zstore/internal/common/constants"
	inErrors "github.com/jithpillai/zstore/internal/common/errors"
	"github.com/jithpillai/zstore/internal/log"
)

type Claims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type jwtTokenKey struct{}

func CreateToken(
	c context.Context,
	secretKey string,
	userId uuid.UUID,
	email string,
	isAdmin bool,
) (string, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CreateToken").
		Str(log.KeyUserID, userId.String()).
		Logger()

	now := time.Now()
	claims := Claims{
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userId.String(),
			Issuer:    constants.AppUserService,
			Audience:  jwt.ClaimStrings{constants.AudienceUser},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secretKey))
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}

	return signed, nil
}

func VerifyToken(c context.Context, token string, secretKey string) (*jwt.Token, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "VerifyToken").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing claims").Logger()
	jwtToken, err := jwt.ParseWithClaims(token,
		&Claims{},
		func(t *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
		jwt.WithAudience(constants.AudienceUser),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(constants.AppUserService),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing with claims with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("parsed claims")

	if !jwtToken.Valid {
		logger.Error().Err(inErrors.ErrTokenInvalid).Msg(inErrors.ErrTokenInvalid.Error())
		return nil, inErrors.ErrTokenInvalid
	}

	return jwtToken, nil
}

func AttachJwtTokenToContext(c context.Context, token *jwt.Token) context.Context {
	return context.WithValue(c, jwtTokenKey{}, token)
}

func JwtTokenFromContext(c context.Context) *jwt.Token {
	token, ok := c.Value(jwtTokenKey{}).(*jwt.Token)
	if !ok {
		return nil
	}
	return token
}

func UserIdFromJwtToken(c context.Context) (uuid.UUID, error) {
	token := JwtTokenFromContext(c)
	if token == nil {
		return uuid.Nil, inErrors.ErrTokenInvalid
	}
	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed getting subject from claims with error=%w", err)
	}
	userId, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed parsing subject=%s with error=%w", subject, err)
	}
	return userId, nil
}

func IsAdminFromJwtToken(c context.Context) bool {
	token := JwtTokenFromContext(c)
	if token == nil {
		return false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return false
	}
	return claims.IsAdmin
}
