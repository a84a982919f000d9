package server

import (
	"net/http"

	"backoffice/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, handlers ...Routes) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.Envelope{Success: true, Message: "ok"})
	})

	for _, h := range handlers {
		h.RegisterRoutes(e)
	}
}
