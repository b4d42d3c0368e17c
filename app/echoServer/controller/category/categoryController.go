package category

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/kervin2020/Capstone-backend-Elib/service/authz"
	categorysvc "github.com/kervin2020/Capstone-backend-Elib/service/category"
)

type Controller struct {
	Svc   categorysvc.Service
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

// POST /categories  (admin)
func (h *Controller) Create(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	if err := h.Authz.RequireAdmin(c.Request().Context(), uid); err != nil {
		return authzJSON(c, err)
	}

	var req CreateCategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "category name is required"})
	}

	cat, err := h.Svc.Create(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		h.Log.Error("category create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"msg":      "category created",
		"category": cat,
	})
}

// GET /categories  (public)
func (h *Controller) List(c echo.Context) error {
	cats, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("category list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"categories": cats})
}

// GET /categories/:id  (public)
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}
	cat, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, categorysvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "category not found"})
		}
		h.Log.Error("category detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, cat)
}

// PUT /categories/:id  (admin; partial merge)
func (h *Controller) Update(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	if err := h.Authz.RequireAdmin(c.Request().Context(), uid); err != nil {
		return authzJSON(c, err)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}

	var req UpdateCategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}

	cat, err := h.Svc.Update(c.Request().Context(), id, req.Name, req.Description)
	if err != nil {
		if errors.Is(err, categorysvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "category not found"})
		}
		h.Log.Error("category update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"msg":      "category updated",
		"category": cat,
	})
}

// DELETE /categories/:id  (admin)
func (h *Controller) Delete(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	if err := h.Authz.RequireAdmin(c.Request().Context(), uid); err != nil {
		return authzJSON(c, err)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}

	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, categorysvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "category not found"})
		}
		h.Log.Error("category delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "category deleted"})
}
