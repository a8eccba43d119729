package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codabean/storefront/internal/api/metrics"
	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/service"
)

// AuthHandler handles sign-in, sign-out, registration and account management.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchanges credentials for a backend credential. With remember=true the session survives a browser restart.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		domain.Credentials	true	"Login credentials"
//	@Success		200		{object}	sessionResponse
//	@Failure		400		{object}	errorResponse
//	@Failure		401		{object}	errorResponse
//	@Failure		422		{object}	validationErrorResponse
//	@Failure		502		{object}	errorResponse
//	@Router			/api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	var req domain.Credentials
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	session, err := h.auth.Login(c.Request().Context(), v.Session, req)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err), "").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success", string(session.Role)).Inc()

	return c.JSON(http.StatusOK, toSessionResponse(session))
}

func loginResult(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return "invalid"
	}
	return "rejected"
}

// Logout godoc
//
//	@Summary	Log out
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	sessionResponse
//	@Router		/api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), v.Session); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(v.Session.Snapshot()))
}

// Session godoc
//
//	@Summary	Current session
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	sessionResponse
//	@Router		/api/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(v.Session.Snapshot()))
}

// Register godoc
//
//	@Summary	Create a customer account
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		domain.RegistrationForm	true	"Sign-up form"
//	@Success	201		{object}	messageResponse
//	@Failure	409		{object}	errorResponse
//	@Failure	422		{object}	validationErrorResponse
//	@Router		/api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req domain.RegistrationForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	msg, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// RegisterAdmin godoc
//
//	@Summary	Create an administrator account
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		body	body		domain.AdminRegistration	true	"Administrator"
//	@Success	201		{object}	messageResponse
//	@Failure	401		{object}	errorResponse
//	@Failure	422		{object}	validationErrorResponse
//	@Router		/api/admin/users [post]
func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	var req domain.AdminRegistration
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	msg, err := h.auth.RegisterAdmin(c.Request().Context(), v.Session.Snapshot(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// DeleteUser godoc
//
//	@Summary	Delete an account
//	@Tags		admin
//	@Produce	json
//	@Param		username	path		string	true	"Username"
//	@Success	200			{object}	messageResponse
//	@Failure	401			{object}	errorResponse
//	@Failure	404			{object}	errorResponse
//	@Router		/api/admin/users/{username} [delete]
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	msg, err := h.auth.DeleteUser(c.Request().Context(), v.Session.Snapshot(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// Guard godoc
//
//	@Summary		Check page access
//	@Description	Reports whether the current session may render a page, and where to redirect otherwise.
//	@Tags			auth
//	@Produce		json
//	@Param			path	query		string	true	"Page path, e.g. /admin"
//	@Success		200		{object}	service.GuardDecision
//	@Router			/api/guard [get]
func (h *AuthHandler) Guard(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, service.AuthorizePage(v.Session.Snapshot(), c.QueryParam("path")))
}
