package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const codeSuccess = "success"

// envelope is the canonical success wrapper: {code, data}.
type envelope struct {
	Code string `json:"code"`
	Data any    `json:"data"`
}

type listData struct {
	Items any `json:"items"`
}

func respond(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, envelope{Code: codeSuccess, Data: data})
}

// respondNull is used by idempotent deletes: {code:"success", data:null}.
func respondNull(c echo.Context) error {
	return c.JSON(http.StatusOK, envelope{Code: codeSuccess, Data: nil})
}

func respondList(c echo.Context, items any) error {
	return c.JSON(http.StatusOK, envelope{Code: codeSuccess, Data: listData{Items: items}})
}
