package usecase

import (
	"errors"
	"fmt"
)

// エラーの種類。errors.Isで判定する
var (
	//400 入力不足・形式不正
	ErrValidation = errors.New("validation error")
	//404 参照先が存在しない
	ErrNotFound = errors.New("not found")
	//409 在庫不足
	ErrInsufficientStock = errors.New("insufficient stock")
	//409 参照されているので削除できない・重複
	ErrConflict = errors.New("conflict")
	//500 合計不一致など。出たらトランザクション境界のバグ
	ErrConsistency = errors.New("consistency error")
	//500
	ErrInternal = errors.New("internal error")
)

// AppError is what usecases return; Message is safe to show to the caller.
type AppError struct {
	Kind    error
	Message string
	//在庫不足・商品なしのとき対象の商品ID
	ProductID int64
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func NewAppError(kind error, message string) error {
	return &AppError{Kind: kind, Message: message}
}

func validationError(message string) error {
	return NewAppError(ErrValidation, message)
}

func notFoundError(message string) error {
	return NewAppError(ErrNotFound, message)
}

func conflictError(message string) error {
	return NewAppError(ErrConflict, message)
}

func productNotFoundError(productID int64) error {
	return &AppError{Kind: ErrNotFound, Message: fmt.Sprintf("product %d not found", productID), ProductID: productID}
}

func insufficientStockError(productID int64) error {
	return &AppError{Kind: ErrInsufficientStock, Message: fmt.Sprintf("insufficient stock for product %d", productID), ProductID: productID}
}

func consistencyError(message string) error {
	return NewAppError(ErrConsistency, message)
}

// 内部の詳細は出さない
func internalError() error {
	return NewAppError(ErrInternal, "db error")
}

func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	ok := errors.As(err, &ae)
	return ae, ok
}
