package http

import (
	"github.com/labstack/echo/v4"
)

// Fixed client-facing messages. Internal error text is only logged.
const (
	MsgInvalidBody        = "Invalid request body"
	MsgEmailRegistered    = "Email already registered"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUnauthorized       = "Unauthorized"
	MsgUserNotFound       = "User not found"
	MsgExpenseNotFound    = "Expense not found"
	MsgExpenseDeleted     = "Expense deleted"
	MsgInternal           = "Internal server error"
)

// envelope is the JSON body of every API response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, envelope{Success: true, Data: data})
}

func respondMessage(c echo.Context, code int, msg string) error {
	return c.JSON(code, envelope{Success: true, Message: msg})
}

func respondError(c echo.Context, code int, msg string) error {
	return c.JSON(code, envelope{Success: false, Error: msg})
}
