package ebook

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/kervin2020/Capstone-backend-Elib/service/authz"
	ebooksvc "github.com/kervin2020/Capstone-backend-Elib/service/ebook"
)

type Controller struct {
	Svc   ebooksvc.Service
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

// POST /ebooks  (admin)
func (h *Controller) Create(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	if err := h.Authz.RequireAdmin(c.Request().Context(), uid); err != nil {
		return authzJSON(c, err)
	}

	var req CreateEbookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "ebook title is required"})
	}

	e, err := h.Svc.Create(c.Request().Context(), req.Title, req.AvailableCopies)
	if err != nil {
		h.Log.Error("ebook create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"msg":   "ebook created",
		"ebook": e,
	})
}

// GET /ebooks  (public)
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("ebook list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ebooks": rows})
}

// GET /ebooks/:id  (public)
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}
	e, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, ebooksvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "ebook not found"})
		}
		h.Log.Error("ebook detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, e)
}

// PUT /ebooks/:id  (admin; partial merge)
func (h *Controller) Update(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	if err := h.Authz.RequireAdmin(c.Request().Context(), uid); err != nil {
		return authzJSON(c, err)
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}

	var req UpdateEbookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}

	e, err := h.Svc.Update(c.Request().Context(), id, req.Title, req.AvailableCopies)
	if err != nil {
		if errors.Is(err, ebooksvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "ebook not found"})
		}
		h.Log.Error("ebook update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"msg":   "ebook updated",
		"ebook": e,
	})
}

// DELETE /ebooks/:id  (admin)
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
		if errors.Is(err, ebooksvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "ebook not found"})
		}
		h.Log.Error("ebook delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "ebook deleted"})
}
