package handler

import (
	"net/http"

	"backoffice/internal/domain/model"
	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	CustomerID      int64                `json:"customer_id"`
	PaymentMethodID int64                `json:"payment_method_id"`
	StatusID        *model.OrderStatusID `json:"status_id"`
	Notes           *string              `json:"notes"`
	Lines           []usecase.LineInput  `json:"lines"`
}

// 指定されたものだけ変更
type OrderUpdateRequest struct {
	StatusID *model.OrderStatusID `json:"status_id"`
	Notes    *string              `json:"notes"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/orders")

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.cancel)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	//二重送信防止キーはヘッダーから受け取る（bodyには入れない）
	idemKey := c.Request().Header.Get("X-Idempotency-Key")

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateOrderInput{
		CustomerID:      req.CustomerID,
		PaymentMethodID: req.PaymentMethodID,
		StatusID:        req.StatusID,
		Notes:           req.Notes,
		Lines:           req.Lines,
		IdempotencyKey:  idemKey,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, "order created", out)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "orders", out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return invalidID(c)
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "order", out)
}

func (h *OrderHandler) update(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return invalidID(c)
	}

	var req OrderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Update(c.Request().Context(), id, usecase.UpdateOrderInput{
		StatusID: req.StatusID,
		Notes:    req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "order updated", out)
}

// 注文を消して在庫を戻す
func (h *OrderHandler) cancel(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return invalidID(c)
	}

	if err := h.uc.Cancel(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "order cancelled", nil)
}
