package usecase

import repo "backoffice/internal/repository"

// 入力チェックはvalidatorパッケージが実装する
type CustomerValidator interface {
	ValidateCreate(in CreateCustomerInput) error
	ValidatePatch(p repo.CustomerPatch) error
}

type ProductValidator interface {
	ValidateCreate(in CreateProductInput) error
	ValidatePatch(p repo.ProductPatch) error
	ValidateStock(stock int64) error
}
