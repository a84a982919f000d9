package handler

import (
	"net/http"
	"strconv"

	repo "backoffice/internal/repository"
	"backoffice/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /products と在庫調整をまとめる
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

type ProductCreateRequest struct {
	CategoryID  int64            `json:"category_id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int64           `json:"stock"`
	ImageURL    string           `json:"image_url"`
	IsActive    *bool            `json:"is_active"`
}

type ProductPatchRequest struct {
	CategoryID  *int64           `json:"category_id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	IsActive    *bool            `json:"is_active"`
	//受け付けない（在庫調整APIを使う）
	Stock *int64 `json:"stock"`
}

// InventoryUpdateRequest は在庫更新の入力です。
type InventoryUpdateRequest struct {
	Stock  *int64 `json:"stock"`
	Reason string `json:"reason"`
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/products")

	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.PUT("/:id/stock", h.adjustStock)
	g.GET("/:id/movements", h.movements)
}

// ?category= で絞り込み
func (h *ProductHandler) list(c echo.Context) error {
	var categoryID *int64
	if v := c.QueryParam("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid category")
		}
		categoryID = &id
	}

	out, err := h.uc.List(c.Request().Context(), categoryID)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "products", out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return invalidID(c)
	}

	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "product", out)
}

func (h *ProductHandler) create(c echo.Context) error {
	var req ProductCreateRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateProductInput{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, "product created", out)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return invalidID(c)
	}

	var req ProductPatchRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if req.Stock != nil {
		return fail(c, http.StatusBadRequest, "stock is changed through PUT /products/:id/stock")
	}

	out, err := h.uc.Update(c.Request().Context(), id, repo.ProductPatch{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "product updated", out)
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return invalidID(c)
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "product deleted", nil)
}

func (h *ProductHandler) adjustStock(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return invalidID(c)
	}

	var req InventoryUpdateRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if req.Stock == nil {
		return fail(c, http.StatusBadRequest, "stock is required")
	}

	out, err := h.uc.AdjustStock(c.Request().Context(), id, *req.Stock, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "stock updated", out)
}

// 在庫変動の履歴（古い順）
func (h *ProductHandler) movements(c echo.Context) error {
	id, valid := parseID(c, "id")
	if !valid {
		return invalidID(c)
	}

	out, err := h.uc.Movements(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "stock movements", out)
}
