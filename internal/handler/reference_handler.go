package handler

import (
	"net/http"

	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

// カテゴリ・注文ステータス・支払い方法
type ReferenceHandler struct {
	uc *usecase.ReferenceUsecase
}

func NewReferenceHandler(uc *usecase.ReferenceUsecase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

func (h *ReferenceHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/categories", h.categories)
	e.GET("/order-statuses", h.orderStatuses)
	e.GET("/payment-methods", h.paymentMethods)
}

func (h *ReferenceHandler) categories(c echo.Context) error {
	out, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "categories", out)
}

func (h *ReferenceHandler) orderStatuses(c echo.Context) error {
	out, err := h.uc.OrderStatuses(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "order statuses", out)
}

func (h *ReferenceHandler) paymentMethods(c echo.Context) error {
	out, err := h.uc.PaymentMethods(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "payment methods", out)
}
