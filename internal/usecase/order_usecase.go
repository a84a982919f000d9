package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"backoffice/internal/domain/model"
	"backoffice/internal/logging"
	repo "backoffice/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 同じキーの注文が同時に作られたとき、txを捨てて既存注文を返すための合図
var errIdempotentReplay = errors.New("idempotent replay")

type OrderUsecase struct {
	tx  repo.TransactionManager
	log *slog.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, log *slog.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, log: log}
}

type LineInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CreateOrderInput struct {
	CustomerID      int64
	PaymentMethodID int64
	//nilならPending
	StatusID *model.OrderStatusID
	Notes    *string
	Lines    []LineInput
	//空なら冪等性チェックしない
	IdempotencyKey string
}

type UpdateOrderInput struct {
	StatusID *model.OrderStatusID
	Notes    *string
}

// Create places an order: every line freezes the current price and takes
// stock atomically. Any failure rolls back the whole order.
func (u *OrderUsecase) Create(ctx context.Context, in CreateOrderInput) (model.OrderView, error) {
	if err := validateCreateOrder(in); err != nil {
		return model.OrderView{}, err
	}
	key := strings.TrimSpace(in.IdempotencyKey)

	status := model.DefaultOrderStatus
	if in.StatusID != nil {
		status = *in.StatusID
	}

	var orderID int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら同じ結果
		if key != "" {
			existing, found, err := r.Orders().FindByIdempotencyKey(ctx, key)
			if err != nil {
				return u.storeError(ctx, "find order by idempotency key", err)
			}
			if found {
				orderID = existing.ID
				return nil
			}
		}

		if err := u.checkOrderReferences(ctx, r, in.CustomerID, in.PaymentMethodID, status); err != nil {
			return err
		}

		//合計は明細を入れてから確定する
		order := model.Order{
			CustomerID:      in.CustomerID,
			StatusID:        status,
			PaymentMethodID: in.PaymentMethodID,
			Total:           decimal.Zero,
			Notes:           in.Notes,
		}
		if key != "" {
			order.IdempotencyKey = &key
		}
		id, err := r.Orders().Create(ctx, order)
		if err != nil {
			if key != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
				return errIdempotentReplay
			}
			return u.storeError(ctx, "create order", err)
		}

		total := decimal.Zero
		for _, li := range in.Lines {
			p, err := r.Products().FindByID(ctx, li.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return productNotFoundError(li.ProductID)
			}
			if err != nil {
				return u.storeError(ctx, "find product", err)
			}
			if p.Stock < li.Quantity {
				return insufficientStockError(p.ID)
			}

			//単価は今の価格を固定
			line := model.NewOrderLine(p.ID, li.Quantity, p.Price)
			line.OrderID = id
			if _, err := r.OrderLines().Create(ctx, line); err != nil {
				return u.storeError(ctx, "create order line", err)
			}
			total = total.Add(line.Subtotal)

			//同時注文があるので条件付きUPDATEで最終判定
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, p.ID, li.Quantity)
			if err != nil {
				return u.storeError(ctx, "decrease stock", err)
			}
			if !ok {
				return insufficientStockError(p.ID)
			}
			if err := r.Inventory().RecordMovement(ctx, model.StockMovement{
				ProductID: p.ID,
				OrderID:   &id,
				Delta:     -li.Quantity,
				Reason:    model.StockReasonOrderCreated,
			}); err != nil {
				return u.storeError(ctx, "record stock movement", err)
			}
		}

		if err := r.Orders().UpdateTotal(ctx, id, total); err != nil {
			return u.storeError(ctx, "update order total", err)
		}
		if err := u.verifyTotal(ctx, r, id, len(in.Lines)); err != nil {
			return err
		}

		orderID = id
		return nil
	})

	if errors.Is(err, errIdempotentReplay) {
		return u.replay(ctx, key)
	}
	if err != nil {
		return model.OrderView{}, err
	}

	u.log.InfoContext(ctx, "order created", "order_id", orderID, "lines", len(in.Lines))
	return u.Get(ctx, orderID)
}

func validateCreateOrder(in CreateOrderInput) error {
	if in.CustomerID <= 0 {
		return validationError("customer_id is required")
	}
	if in.PaymentMethodID <= 0 {
		return validationError("payment_method_id is required")
	}
	if len(in.Lines) == 0 {
		return validationError("at least one product line is required")
	}
	for i, li := range in.Lines {
		if li.ProductID <= 0 {
			return validationError(fmt.Sprintf("line %d: invalid product_id", i+1))
		}
		if li.Quantity <= 0 {
			return validationError(fmt.Sprintf("line %d: quantity must be greater than 0", i+1))
		}
	}
	if len(strings.TrimSpace(in.IdempotencyKey)) > 255 {
		return validationError("invalid idempotency key")
	}
	return nil
}

// 顧客・支払い方法・ステータスの存在確認
func (u *OrderUsecase) checkOrderReferences(ctx context.Context, r repo.TxRepos, customerID, paymentMethodID int64, status model.OrderStatusID) error {
	if _, err := r.Customers().FindByID(ctx, customerID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError(fmt.Sprintf("customer %d not found", customerID))
		}
		return u.storeError(ctx, "find customer", err)
	}
	if _, err := r.References().FindPaymentMethod(ctx, paymentMethodID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError(fmt.Sprintf("payment method %d not found", paymentMethodID))
		}
		return u.storeError(ctx, "find payment method", err)
	}
	if _, err := r.References().FindOrderStatus(ctx, status); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError(fmt.Sprintf("order status %d not found", status))
		}
		return u.storeError(ctx, "find order status", err)
	}
	return nil
}

// 合計 == 明細小計の合計 をtx内で読み直して確認
func (u *OrderUsecase) verifyTotal(ctx context.Context, r repo.TxRepos, orderID int64, wantLines int) error {
	o, err := r.Orders().FindByID(ctx, orderID)
	if err != nil {
		return u.storeError(ctx, "reload order", err)
	}
	lines, err := r.OrderLines().ListByOrderID(ctx, orderID)
	if err != nil {
		return u.storeError(ctx, "reload order lines", err)
	}

	sum := model.SumSubtotals(lines)
	if len(lines) != wantLines || !sum.Equal(o.Total) {
		u.log.ErrorContext(ctx, "order total mismatch",
			"order_id", orderID, "total", o.Total.String(), "lines_sum", sum.String(), "lines", len(lines))
		return consistencyError("order total does not match its lines")
	}
	return nil
}

func (u *OrderUsecase) replay(ctx context.Context, key string) (model.OrderView, error) {
	var orderID int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, key)
		if err != nil {
			return u.storeError(ctx, "find order by idempotency key", err)
		}
		if !found {
			return conflictError("idempotency conflict")
		}
		orderID = existing.ID
		return nil
	})
	if err != nil {
		return model.OrderView{}, err
	}
	return u.Get(ctx, orderID)
}

// Get returns the order with customer, status, payment method and lines.
func (u *OrderUsecase) Get(ctx context.Context, orderID int64) (model.OrderView, error) {
	if orderID <= 0 {
		return model.OrderView{}, validationError("invalid id")
	}

	var out model.OrderView

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Orders().FindSummary(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("order not found")
		}
		if err != nil {
			return u.storeError(ctx, "find order", err)
		}

		lines, err := r.OrderLines().ListViewsByOrderID(ctx, orderID)
		if err != nil {
			return u.storeError(ctx, "list order lines", err)
		}

		out = model.OrderView{OrderSummary: s, Lines: lines}
		return nil
	})

	if err != nil {
		return model.OrderView{}, err
	}
	return out, nil
}

// List returns order headers, newest first.
func (u *OrderUsecase) List(ctx context.Context) ([]model.OrderSummary, error) {
	var out []model.OrderSummary

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		items, err := r.Orders().ListSummaries(ctx)
		if err != nil {
			return u.storeError(ctx, "list orders", err)
		}
		out = items
		return nil
	})

	if err != nil {
		return []model.OrderSummary{}, err
	}
	return out, nil
}

// 監査ログに残す注文の状態
type orderAuditState struct {
	StatusID model.OrderStatusID `json:"status_id"`
	Notes    *string             `json:"notes"`
}

// Update changes status and/or notes only. Lines, total and stock stay as they are.
func (u *OrderUsecase) Update(ctx context.Context, orderID int64, in UpdateOrderInput) (model.OrderView, error) {
	if orderID <= 0 {
		return model.OrderView{}, validationError("invalid id")
	}
	patch := repo.OrderPatch{StatusID: in.StatusID, Notes: in.Notes}
	if patch.IsEmpty() {
		return model.OrderView{}, validationError("nothing to update")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFoundError("order not found")
		}
		if err != nil {
			return u.storeError(ctx, "find order", err)
		}

		if in.StatusID != nil {
			_, err := r.References().FindOrderStatus(ctx, *in.StatusID)
			if errors.Is(err, repo.ErrNotFound) {
				return validationError(fmt.Sprintf("unknown order status %d", *in.StatusID))
			}
			if err != nil {
				return u.storeError(ctx, "find order status", err)
			}
		}

		if err := r.Orders().Update(ctx, orderID, patch); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError("order not found")
			}
			return u.storeError(ctx, "update order", err)
		}

		after := orderAuditState{StatusID: before.StatusID, Notes: before.Notes}
		if in.StatusID != nil {
			after.StatusID = *in.StatusID
		}
		if in.Notes != nil {
			after.Notes = in.Notes
		}
		return u.audit(ctx, r, model.AuditActionUpdateOrder, orderID,
			orderAuditState{StatusID: before.StatusID, Notes: before.Notes}, after)
	})

	if err != nil {
		return model.OrderView{}, err
	}
	return u.Get(ctx, orderID)
}

type orderCancelState struct {
	Total decimal.Decimal `json:"total"`
	Lines int             `json:"lines"`
}

// Cancel returns every line's quantity to stock and deletes the order.
// Nothing changes unless all of it succeeds.
func (u *OrderUsecase) Cancel(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return validationError("invalid id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		lines, err := r.OrderLines().ListByOrderID(ctx, orderID)
		if err != nil {
			return u.storeError(ctx, "list order lines", err)
		}

		//在庫を戻す
		for _, l := range lines {
			if err := r.Inventory().IncreaseStock(ctx, l.ProductID, l.Quantity); err != nil {
				if errors.Is(err, repo.ErrNotFound) {
					return consistencyError(fmt.Sprintf("product %d of order line is missing", l.ProductID))
				}
				return u.storeError(ctx, "increase stock", err)
			}
			if err := r.Inventory().RecordMovement(ctx, model.StockMovement{
				ProductID: l.ProductID,
				OrderID:   &orderID,
				Delta:     l.Quantity,
				Reason:    model.StockReasonOrderCancelled,
			}); err != nil {
				return u.storeError(ctx, "record stock movement", err)
			}
		}

		n, err := r.Orders().Delete(ctx, orderID)
		if err != nil {
			return u.storeError(ctx, "delete order", err)
		}
		if n == 0 {
			return notFoundError("order not found")
		}

		//明細はCASCADEで消えているはず
		remaining, err := r.OrderLines().ListByOrderID(ctx, orderID)
		if err != nil {
			return u.storeError(ctx, "reload order lines", err)
		}
		if len(remaining) > 0 {
			u.log.ErrorContext(ctx, "order lines survived delete", "order_id", orderID, "lines", len(remaining))
			return consistencyError("order lines were not removed")
		}

		return u.audit(ctx, r, model.AuditActionCancelOrder, orderID,
			orderCancelState{Total: model.SumSubtotals(lines), Lines: len(lines)}, nil)
	})

	if err != nil {
		return err
	}
	u.log.InfoContext(ctx, "order cancelled", "order_id", orderID)
	return nil
}

func (u *OrderUsecase) audit(ctx context.Context, r repo.TxRepos, action model.AuditAction, orderID int64, before, after any) error {
	return writeAudit(ctx, u.log, r, model.AuditLog{
		Action:       action,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   orderID,
	}, before, after)
}

func (u *OrderUsecase) storeError(ctx context.Context, op string, err error) error {
	return storeError(ctx, u.log, op, err)
}

// 監査ログを作成。before/afterはJSONにして残す（nilなら空）
func writeAudit(ctx context.Context, log *slog.Logger, r repo.TxRepos, entry model.AuditLog, before, after any) error {
	var err error
	if entry.BeforeJSON, err = auditJSON(before); err != nil {
		return storeError(ctx, log, "encode audit state", err)
	}
	if entry.AfterJSON, err = auditJSON(after); err != nil {
		return storeError(ctx, log, "encode audit state", err)
	}
	entry.RequestID = logging.RequestID(ctx)
	entry.CreatedAt = time.Now()

	if err := r.AuditLogs().Create(ctx, entry); err != nil {
		return storeError(ctx, log, "create audit log", err)
	}
	return nil
}

func auditJSON(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DBエラーはログに出して、呼び出し側には"db error"だけ返す
func storeError(ctx context.Context, log *slog.Logger, op string, err error) error {
	log.ErrorContext(ctx, "store failure", "op", op, "err", err)
	return internalError()
}
