package repository

import (
	"context"

	"backoffice/internal/domain/model"
)

// 顧客の部分更新。nilのフィールドは変更しない
type CustomerPatch struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Address    *string
	City       *string
	Country    *string
	PostalCode *string
}

// IsEmpty reports whether no field is set.
func (p CustomerPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Phone == nil &&
		p.Address == nil && p.City == nil && p.Country == nil && p.PostalCode == nil
}

// 顧客の保存・取得を約束
type CustomerRepository interface {
	List(ctx context.Context) ([]model.Customer, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)
	//メールが使われているか（excludeIDの顧客は除く）
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	Update(ctx context.Context, id int64, patch CustomerPatch) error
	Delete(ctx context.Context, id int64) error
	//注文が何件参照しているか
	CountOrders(ctx context.Context, id int64) (int64, error)
}
