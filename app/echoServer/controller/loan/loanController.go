package loan

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/kervin2020/Capstone-backend-Elib/service/authz"
	loansvc "github.com/kervin2020/Capstone-backend-Elib/service/loan"
)

type Controller struct {
	Svc   loansvc.Service
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

// POST /loans
func (h *Controller) Create(c echo.Context) error {
	var req CreateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "ebook id is required"})
	}
	uid, _ := c.Get("user_id").(int64)

	l, err := h.Svc.Checkout(c.Request().Context(), uid, req.EbookID)
	if err != nil {
		switch loansvc.Code(err) {
		case loansvc.ErrEbookNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "ebook not found"})
		case loansvc.ErrNoCopies:
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "no copy available"})
		}
		h.Log.Error("loan create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"msg":  "loan created",
		"loan": l,
	})
}

// GET /loans  (admin: all; otherwise own)
func (h *Controller) List(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	rows, err := h.Svc.List(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("loan list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"loans": rows})
}

// GET /loans/:id  (owner or admin)
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	l, err := h.Svc.Get(c.Request().Context(), uid, id)
	if err != nil {
		switch loansvc.Code(err) {
		case loansvc.ErrLoanNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "loan not found"})
		case loansvc.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"msg": "access denied"})
		}
		h.Log.Error("loan detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, l)
}

// PUT /loans/:id  (return; owner only)
func (h *Controller) Return(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	l, err := h.Svc.Return(c.Request().Context(), uid, id)
	if err != nil {
		switch loansvc.Code(err) {
		case loansvc.ErrLoanNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "loan not found"})
		case loansvc.ErrNotOwner:
			return c.JSON(http.StatusForbidden, echo.Map{"msg": "access denied: not the owner of this loan"})
		case loansvc.ErrAlreadyReturned:
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "loan already returned"})
		}
		h.Log.Error("loan return", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"msg": "loan returned",
		"loan": echo.Map{
			"id":          l.ID,
			"return_date": l.ReturnDate,
			"is_returned": l.IsReturned,
		},
	})
}

// GET /users/:id/loans  (owner or admin)
func (h *Controller) ListForUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)
	if err := h.Authz.RequireAccount(c.Request().Context(), uid, &id); err != nil {
		return authzJSON(c, err)
	}

	rows, err := h.Svc.ListForUser(c.Request().Context(), id)
	if err != nil {
		h.Log.Error("user loans", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"loans": rows})
}

// DELETE /loans/:id  (admin; no inventory adjustment)
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
		if loansvc.Code(err) == loansvc.ErrLoanNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"msg": "loan not found"})
		}
		h.Log.Error("loan delete", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "loan deleted"})
}
