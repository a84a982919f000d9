package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"backoffice/internal/domain/model"
	repo "backoffice/internal/repository"

	"gorm.io/gorm"
)

type CustomerUsecase struct {
	tx        repo.TransactionManager
	customers repo.CustomerRepository
	v         CustomerValidator
	log       *slog.Logger
}

func NewCustomerUsecase(tx repo.TransactionManager, customers repo.CustomerRepository, v CustomerValidator, log *slog.Logger) *CustomerUsecase {
	return &CustomerUsecase{tx: tx, customers: customers, v: v, log: log}
}

type CreateCustomerInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Address    string
	City       string
	Country    string
	PostalCode string
}

func (u *CustomerUsecase) List(ctx context.Context) ([]model.Customer, error) {
	items, err := u.customers.List(ctx)
	if err != nil {
		return []model.Customer{}, storeError(ctx, u.log, "list customers", err)
	}
	return items, nil
}

func (u *CustomerUsecase) Get(ctx context.Context, customerID int64) (model.Customer, error) {
	if customerID <= 0 {
		return model.Customer{}, validationError("invalid customer id")
	}

	c, err := u.customers.FindByID(ctx, customerID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Customer{}, notFoundError(fmt.Sprintf("customer %d not found", customerID))
	}
	if err != nil {
		return model.Customer{}, storeError(ctx, u.log, "find customer", err)
	}
	return c, nil
}

func (u *CustomerUsecase) Create(ctx context.Context, in CreateCustomerInput) (model.Customer, error) {
	if err := u.v.ValidateCreate(in); err != nil {
		return model.Customer{}, validationError(err.Error())
	}
	email := strings.TrimSpace(in.Email)

	var out model.Customer

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//email重複チェック
		used, err := r.Customers().ExistsByEmail(ctx, email, 0)
		if err != nil {
			return storeError(ctx, u.log, "check email", err)
		}
		if used {
			return conflictError("email already in use")
		}

		c, err := r.Customers().Create(ctx, model.Customer{
			FirstName:  strings.TrimSpace(in.FirstName),
			LastName:   strings.TrimSpace(in.LastName),
			Email:      email,
			Phone:      strings.TrimSpace(in.Phone),
			Address:    strings.TrimSpace(in.Address),
			City:       strings.TrimSpace(in.City),
			Country:    strings.TrimSpace(in.Country),
			PostalCode: strings.TrimSpace(in.PostalCode),
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictError("email already in use")
		}
		if err != nil {
			return storeError(ctx, u.log, "create customer", err)
		}
		out = c
		return nil
	})

	if err != nil {
		return model.Customer{}, err
	}
	return out, nil
}

func (u *CustomerUsecase) Update(ctx context.Context, customerID int64, patch repo.CustomerPatch) (model.Customer, error) {
	if customerID <= 0 {
		return model.Customer{}, validationError("invalid customer id")
	}
	if err := u.v.ValidatePatch(patch); err != nil {
		return model.Customer{}, validationError(err.Error())
	}
	trimPatch(&patch)

	var out model.Customer

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Customers().FindByID(ctx, customerID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError(fmt.Sprintf("customer %d not found", customerID))
			}
			return storeError(ctx, u.log, "find customer", err)
		}

		//変更後のemailが他の顧客と被らないか
		if patch.Email != nil {
			used, err := r.Customers().ExistsByEmail(ctx, *patch.Email, customerID)
			if err != nil {
				return storeError(ctx, u.log, "check email", err)
			}
			if used {
				return conflictError("email already in use")
			}
		}

		err := r.Customers().Update(ctx, customerID, patch)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return conflictError("email already in use")
		}
		if err != nil {
			return storeError(ctx, u.log, "update customer", err)
		}

		c, err := r.Customers().FindByID(ctx, customerID)
		if err != nil {
			return storeError(ctx, u.log, "reload customer", err)
		}
		out = c
		return nil
	})

	if err != nil {
		return model.Customer{}, err
	}
	return out, nil
}

// Delete removes a customer without orders.
func (u *CustomerUsecase) Delete(ctx context.Context, customerID int64) error {
	if customerID <= 0 {
		return validationError("invalid customer id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Customers().FindByID(ctx, customerID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFoundError(fmt.Sprintf("customer %d not found", customerID))
			}
			return storeError(ctx, u.log, "find customer", err)
		}

		n, err := r.Customers().CountOrders(ctx, customerID)
		if err != nil {
			return storeError(ctx, u.log, "count orders", err)
		}
		if n > 0 {
			return conflictError(fmt.Sprintf("customer %d has %d orders", customerID, n))
		}

		err = r.Customers().Delete(ctx, customerID)
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return conflictError(fmt.Sprintf("customer %d has orders", customerID))
		}
		if err != nil {
			return storeError(ctx, u.log, "delete customer", err)
		}
		return nil
	})
}

func trimPatch(p *repo.CustomerPatch) {
	for _, f := range []**string{&p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Address, &p.City, &p.Country, &p.PostalCode} {
		if *f != nil {
			s := strings.TrimSpace(**f)
			*f = &s
		}
	}
}
