package user

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/kervin2020/Capstone-backend-Elib/model"
	"github.com/kervin2020/Capstone-backend-Elib/service/authz"
	usersvc "github.com/kervin2020/Capstone-backend-Elib/service/user"
)

type Controller struct {
	Svc   usersvc.Service
	Authz authz.Authorizer
	V     *validator.Validate
	Log   *slog.Logger
}

func authzJSON(c echo.Context, err error) error {
	var ae *authz.Error
	if errors.As(err, &ae) {
		return c.JSON(ae.Status, echo.Map{"msg": ae.Msg})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
}

// Create registers a new user
// @Summary      Register user
// @Description  Register a new user; email must be unique
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any "missing fields or email already in use"
// @Failure      500  {object}  map[string]any
// @Router       /users [post]
func (h *Controller) Create(c echo.Context) error {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		h.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		h.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "username, email and password are required"})
	}

	u, err := h.Svc.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, usersvc.ErrEmailTaken) {
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "email already in use"})
		}
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		h.Log.Error("register failed", "err", err, "req_id", rid, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "register failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"msg":  "user created",
		"user": u,
	})
}

// Login exchanges credentials for a bearer token
// @Summary      Login
// @Description  Login with email + password, returns a 1h access token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /login [post]
func (h *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		h.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "email and password are required"})
	}

	token, err := h.Svc.Login(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, usersvc.ErrInvalidCreds) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "invalid email or password"})
		}
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		h.Log.Error("login failed", "err", err, "req_id", rid, "path", c.Path())
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "login failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"access_token": token})
}

// GET /users  (admin)
func (h *Controller) List(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	if err := h.Authz.RequireAccount(c.Request().Context(), uid, nil); err != nil {
		return authzJSON(c, err)
	}

	users, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("user list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// GET /users/me
func (h *Controller) Me(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	u, err := h.Svc.ByID(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, usersvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
		}
		h.Log.Error("user me", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, u)
}

// GET /users/:id  (owner or admin)
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)
	if err := h.Authz.RequireAccount(c.Request().Context(), uid, &id); err != nil {
		return authzJSON(c, err)
	}

	u, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, usersvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
		}
		h.Log.Error("user detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, u)
}

// PUT /users/:id  (owner or admin; partial merge)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)
	if err := h.Authz.RequireAccount(c.Request().Context(), uid, &id); err != nil {
		return authzJSON(c, err)
	}

	var req model.UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}

	u, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
		case errors.Is(err, usersvc.ErrEmailTaken):
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "email already in use"})
		}
		h.Log.Error("user update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"msg":  "user updated",
		"user": u,
	})
}

// DELETE /users/:id  (owner or admin)
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)
	if err := h.Authz.RequireAccount(c.Request().Context(), uid, &id); err != nil {
		return authzJSON(c, err)
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, usersvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "user not found"})
		}
		h.Log.Error("user delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "user deleted"})
}
