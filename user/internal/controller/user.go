package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/jithpillai/zstore/internal/common"
	commonErrors "github.com/jithpillai/zstore/internal/common/errors"
	commonHttp "github.com/jithpillai/zstore/internal/common/http"
	"github.com/jithpillai/zstore/internal/log"
	"github.com/jithpillai/zstore/internal/middleware"
	"github.com/jithpillai/zstore/user/internal/common/otel"
	"github.com/jithpillai/zstore/user/internal/service"
	"github.com/jithpillai/zstore/user/pkg/request"
)

type UserController struct {
	service *service.UserService
}

func AttachUserController(
	router *mux.Router,
	service *service.UserService,
	secretKey string,
) {
	controller := UserController{service: service}

	userRouter := router.PathPrefix("/users").Subrouter()
	userRouter.HandleFunc("/register", controller.Register).Methods(http.MethodPost)
	userRouter.HandleFunc("/login", controller.Login).Methods(http.MethodPost)
	userRouter.Handle(
		"/{userId}",
		middleware.Auth(secretKey)(http.HandlerFunc(controller.FindUserById)),
	).Methods(http.MethodGet)

	adminRouter := router.PathPrefix("/admin/users").Subrouter()
	adminRouter.Use(middleware.Auth(secretKey), middleware.Admin)
	adminRouter.HandleFunc("", controller.FindUsers).Methods(http.MethodGet)
	adminRouter.HandleFunc("/{userId}", controller.FindUserById).Methods(http.MethodGet)
	adminRouter.HandleFunc("/{userId}", controller.UpdateUser).Methods(http.MethodPut)
	adminRouter.HandleFunc("/{userId}", controller.DeleteUser).Methods(http.MethodDelete)
}

func (t UserController) Register(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Register").
		Str(log.KeyProcess, "decoding request body").
		Logger()

	logger.Info().Msg("decoding request body")
	reqBody := request.Register{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "registering user").Logger()
	logger.Info().Msg("registering user")
	c = logger.WithContext(c)
	user, err := t.service.Register(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed registering user with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("registered user id=%s", user.ID.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusCreated,
		"message":    fmt.Sprintf("user id=%s registered", user.ID.String()),
		"data": map[string]interface{}{
			"user": user,
		},
	})
}

func (t UserController) Login(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController Login").
		Str(log.KeyProcess, "decoding request body").
		Logger()

	logger.Info().Msg("decoding request body")
	reqBody := request.Login{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "logging in user").Logger()
	logger.Info().Msg("logging in user")
	c = logger.WithContext(c)
	token, err := t.service.Login(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed logging in user with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("logged in user")

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "login success",
		"data": map[string]interface{}{
			"token": token,
		},
	})
}

func (t UserController) FindUserById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController FindUserById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController FindUserById").
		Str(log.KeyProcess, "validating userId").
		Logger()

	logger.Info().Msg("validating userId")
	userId, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		err = fmt.Errorf("failed validating userId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()
	logger.Info().Msgf("validated userId=%s", userId.String())

	logger = logger.With().Str(log.KeyProcess, "checking requester").Logger()
	logger.Info().Msg("checking requester")
	requesterId, err := common.UserIdFromJwtToken(c)
	if err != nil {
		err = fmt.Errorf("failed checking requester with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusUnauthorized,
			"message":    err.Error(),
		})
		return
	}
	// A user can read their own profile; everyone else's requires admin.
	if requesterId != userId && !common.IsAdminFromJwtToken(c) {
		err = fmt.Errorf("failed checking requester with error=%w", commonErrors.ErrAdminOnly)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusForbidden,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("checked requester id=%s", requesterId.String())

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	logger.Info().Msgf("finding user id=%s", userId.String())
	c = logger.WithContext(c)
	user, err := t.service.FindUserById(c, userId)
	if err != nil {
		err = fmt.Errorf("failed finding user id=%s with error=%w", userId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found user id=%s", userId.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("user id=%s found", userId.String()),
		"data": map[string]interface{}{
			"user": user,
		},
	})
}

func (t UserController) FindUsers(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController FindUsers")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController FindUsers").
		Str(log.KeyProcess, "finding users").
		Logger()

	logger.Info().Msg("finding users")
	c = logger.WithContext(c)
	users, err := t.service.FindUsers(c)
	if err != nil {
		err = fmt.Errorf("failed finding users with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusInternalServerError,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("found %d users", len(users))

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "users found",
		"data": map[string]interface{}{
			"users": users,
		},
	})
}

func (t UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController UpdateUser")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController UpdateUser").
		Str(log.KeyProcess, "validating userId").
		Logger()

	logger.Info().Msg("validating userId")
	userId, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		err = fmt.Errorf("failed validating userId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()
	logger.Info().Msgf("validated userId=%s", userId.String())

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UpdateUser{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "updating user").Logger()
	logger.Info().Msgf("updating user id=%s", userId.String())
	c = logger.WithContext(c)
	user, err := t.service.UpdateUser(c, userId, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating user id=%s with error=%w", userId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("updated user id=%s", userId.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("user id=%s updated", userId.String()),
		"data": map[string]interface{}{
			"user": user,
		},
	})
}

func (t UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "UserController DeleteUser")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserController DeleteUser").
		Str(log.KeyProcess, "validating userId").
		Logger()

	logger.Info().Msg("validating userId")
	userId, err := uuid.Parse(mux.Vars(r)["userId"])
	if err != nil {
		err = fmt.Errorf("failed validating userId with error=%w", err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": http.StatusBadRequest,
			"message":    err.Error(),
		})
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()
	logger.Info().Msgf("validated userId=%s", userId.String())

	logger = logger.With().Str(log.KeyProcess, "deleting user").Logger()
	logger.Info().Msgf("deleting user id=%s", userId.String())
	c = logger.WithContext(c)
	err = t.service.DeleteUser(c, userId)
	if err != nil {
		err = fmt.Errorf("failed deleting user id=%s with error=%w", userId.String(), err)
		commonErrors.HandleError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     "failed",
			"statusCode": statusCodeFromError(err),
			"message":    err.Error(),
		})
		return
	}
	logger.Info().Msgf("deleted user id=%s", userId.String())

	commonHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    fmt.Sprintf("user id=%s deleted", userId.String()),
	})
}

func statusCodeFromError(err error) int {
	if errors.Is(err, commonErrors.ErrUserNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, commonErrors.ErrEmailTaken) {
		return http.StatusConflict
	}
	if errors.Is(err, commonErrors.ErrWrongCredential) {
		return http.StatusUnauthorized
	}
	return http.StatusBadRequest
}
