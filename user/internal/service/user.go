package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jithpillai/zstore/internal/common"
	commonErrors "github.com/jithpillai/zstore/internal/common/errors"
	"github.com/jithpillai/zstore/internal/config"
	"github.com/jithpillai/zstore/internal/log"
	"github.com/jithpillai/zstore/internal/repository"
	"github.com/jithpillai/zstore/user/internal/common/otel"
	"github.com/jithpillai/zstore/user/pkg/request"
)

type UserService struct {
	queries *repository.Queries
	config  config.Application
}

func NewUserService(queries *repository.Queries, config config.Application) UserService {
	return UserService{queries: queries, config: config}
}

func (s UserService) Register(
	c context.Context,
	param request.Register,
) (repository.User, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking email").Logger()
	logger.Info().Msgf("checking email=%s is not registered", param.Email)
	_, err := s.queries.FindUserByEmail(c, param.Email)
	if err == nil {
		err = fmt.Errorf(
			"failed registering email=%s with error=%w",
			param.Email,
			commonErrors.ErrEmailTaken,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.User{}, err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding user by email=%s with error=%w", param.Email, err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.User{}, err
	}
	logger.Info().Msgf("checked email=%s is not registered", param.Email)

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	logger.Info().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.User{}, err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "inserting user").Logger()
	logger.Info().Msg("inserting user")
	user, err := s.queries.InsertUser(c, repository.InsertUserParams{
		ID:       uuid.New(),
		Name:     param.Name,
		Email:    param.Email,
		Password: string(hashed),
		IsAdmin:  false,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting user with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.User{}, err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()
	logger.Info().Msg("inserted user")

	return user, nil
}

func (s UserService) Login(c context.Context, param request.Login) (string, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user by email").Logger()
	logger.Info().Msgf("finding user by email=%s", param.Email)
	user, err := s.queries.FindUserByEmail(c, param.Email)
	if err != nil {
		// Same error whether the email is unknown or the password is
		// wrong, so login failures do not reveal which emails exist.
		err = fmt.Errorf(
			"failed finding user by email=%s with error=%w",
			param.Email,
			commonErrors.ErrWrongCredential,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()
	logger.Info().Msgf("found user by email=%s", param.Email)

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	logger.Info().Msg("verifying password")
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password))
	if err != nil {
		err = fmt.Errorf(
			"failed verifying password with error=%w",
			commonErrors.ErrWrongCredential,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "creating token").Logger()
	logger.Info().Msg("creating token")
	c = logger.WithContext(c)
	token, err := common.CreateToken(c, s.config.SecretKey, user.ID, user.Email, user.IsAdmin)
	if err != nil {
		err = fmt.Errorf("failed creating token with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Msg("created token")

	return token, nil
}

func (s UserService) FindUserById(c context.Context, id uuid.UUID) (repository.User, error) {
	c, span := otel.Tracer.Start(c, "UserService FindUserById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindUserById").
		Str(log.KeyUserID, id.String()).
		Str(log.KeyProcess, "finding user by id").
		Logger()

	logger.Info().Msgf("finding user by id=%s", id.String())
	user, err := s.queries.FindUserById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrUserNotFound
		}
		err = fmt.Errorf("failed finding user by id=%s with error=%w", id.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.User{}, err
	}
	logger.Info().Msgf("found user by id=%s", id.String())

	return user, nil
}

func (s UserService) FindUsers(c context.Context) ([]repository.User, error) {
	c, span := otel.Tracer.Start(c, "UserService FindUsers")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindUsers").
		Str(log.KeyProcess, "finding users").
		Logger()

	logger.Info().Msg("finding users")
	users, err := s.queries.FindUsers(c)
	if err != nil {
		err = fmt.Errorf("failed finding users with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msgf("found %d users", len(users))

	return users, nil
}

func (s UserService) UpdateUser(
	c context.Context,
	id uuid.UUID,
	param request.UpdateUser,
) (repository.User, error) {
	c, span := otel.Tracer.Start(c, "UserService UpdateUser")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService UpdateUser").
		Str(log.KeyUserID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user by id").Logger()
	logger.Info().Msgf("finding user by id=%s", id.String())
	existing, err := s.queries.FindUserById(c, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = commonErrors.ErrUserNotFound
		}
		err = fmt.Errorf("failed finding user by id=%s with error=%w", id.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.User{}, err
	}
	logger.Info().Msgf("found user by id=%s", id.String())

	password := existing.Password
	if param.Password != "" {
		logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
		logger.Info().Msg("hashing password")
		hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
		if err != nil {
			err = fmt.Errorf("failed hashing password with error=%w", err)
			commonErrors.HandleError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return repository.User{}, err
		}
		password = string(hashed)
		logger.Info().Msg("hashed password")
	}

	logger = logger.With().Str(log.KeyProcess, "updating user").Logger()
	logger.Info().Msgf("updating user id=%s", id.String())
	user, err := s.queries.UpdateUser(c, repository.UpdateUserParams{
		ID:       id,
		Name:     param.Name,
		Email:    param.Email,
		Password: password,
		IsAdmin:  param.IsAdmin,
	})
	if err != nil {
		err = fmt.Errorf("failed updating user id=%s with error=%w", id.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.User{}, err
	}
	logger.Info().Msgf("updated user id=%s", id.String())

	return user, nil
}

func (s UserService) DeleteUser(c context.Context, id uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "UserService DeleteUser")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService DeleteUser").
		Str(log.KeyUserID, id.String()).
		Str(log.KeyProcess, "deleting user").
		Logger()

	logger.Info().Msgf("deleting user id=%s", id.String())
	deletedCount, err := s.queries.DeleteUserById(c, id)
	if err != nil {
		err = fmt.Errorf("failed deleting user id=%s with error=%w", id.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if deletedCount == 0 {
		err = fmt.Errorf(
			"failed deleting user id=%s with error=%w",
			id.String(),
			commonErrors.ErrUserNotFound,
		)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msgf("deleted user id=%s", id.String())

	return nil
}
