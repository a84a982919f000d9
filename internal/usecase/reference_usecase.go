package usecase

import (
	"context"
	"log/slog"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"
)

// 画面のプルダウン用の参照データ
type ReferenceUsecase struct {
	refs repo.ReferenceRepository
	log  *slog.Logger
}

func NewReferenceUsecase(refs repo.ReferenceRepository, log *slog.Logger) *ReferenceUsecase {
	return &ReferenceUsecase{refs: refs, log: log}
}

func (u *ReferenceUsecase) Categories(ctx context.Context) ([]model.Category, error) {
	items, err := u.refs.ListCategories(ctx)
	if err != nil {
		return []model.Category{}, storeError(ctx, u.log, "list categories", err)
	}
	return items, nil
}

func (u *ReferenceUsecase) OrderStatuses(ctx context.Context) ([]model.OrderStatus, error) {
	items, err := u.refs.ListOrderStatuses(ctx)
	if err != nil {
		return []model.OrderStatus{}, storeError(ctx, u.log, "list order statuses", err)
	}
	return items, nil
}

func (u *ReferenceUsecase) PaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	items, err := u.refs.ListPaymentMethods(ctx)
	if err != nil {
		return []model.PaymentMethod{}, storeError(ctx, u.log, "list payment methods", err)
	}
	return items, nil
}
