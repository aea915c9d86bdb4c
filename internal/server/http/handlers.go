package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/fintrack/internal/common"
	"github.com/dmitrijs2005/fintrack/internal/server/models"
	"github.com/dmitrijs2005/fintrack/internal/server/services"
)

type handlers struct {
	users    *services.UserService
	expenses *services.ExpenseService
}

// bind decodes the JSON body into v whatever the Content-Type. An empty body
// leaves v untouched; any other decoding failure is reported as a validation
// error with a fixed message.
func bind(c echo.Context, v any) error {
	err := c.Echo().JSONSerializer.Deserialize(c, v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return common.NewValidationError(MsgInvalidBody)
}

func (h *handlers) register(c echo.Context) error {
	var in services.RegisterInput
	if err := bind(c, &in); err != nil {
		return err
	}

	res, err := h.users.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, res)
}

func (h *handlers) login(c echo.Context) error {
	var in services.LoginInput
	if err := bind(c, &in); err != nil {
		return err
	}

	res, err := h.users.Login(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, res)
}

func (h *handlers) getProfile(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	p, err := h.users.GetProfile(c.Request().Context(), id)
	if err != nil {
		return userError(err)
	}
	return respond(c, http.StatusOK, p)
}

func (h *handlers) updateProfile(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var upd models.ProfileUpdate
	if err := bind(c, &upd); err != nil {
		return err
	}

	p, err := h.users.UpdateProfile(c.Request().Context(), id, upd)
	if err != nil {
		return userError(err)
	}
	return respond(c, http.StatusOK, p)
}

type expenseList struct {
	Expenses []*models.Expense `json:"expenses"`
}

func (h *handlers) listExpenses(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	list, err := h.expenses.List(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*models.Expense{}
	}
	return respond(c, http.StatusOK, expenseList{Expenses: list})
}

func (h *handlers) createExpense(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var in services.ExpenseInput
	if err := bind(c, &in); err != nil {
		return err
	}

	e, err := h.expenses.Create(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, e)
}

func (h *handlers) updateExpense(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var in services.ExpenseInput
	if err := bind(c, &in); err != nil {
		return err
	}

	e, err := h.expenses.Update(c.Request().Context(), id, c.Param("id"), in)
	if err != nil {
		return expenseError(err)
	}
	return respond(c, http.StatusOK, e)
}

func (h *handlers) deleteExpense(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.expenses.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return expenseError(err)
	}
	return respondMessage(c, http.StatusOK, MsgExpenseDeleted)
}

func healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func userError(err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return notFound(MsgUserNotFound, err)
	}
	return err
}

func expenseError(err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return notFound(MsgExpenseNotFound, err)
	}
	return err
}
