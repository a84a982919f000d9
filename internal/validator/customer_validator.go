package validator

import (
	"regexp"
	"strings"

	repo "backoffice/internal/repository"
	"backoffice/internal/usecase"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type customerValidator struct{}

// Usecaseは interface を依存注入
func NewCustomerValidator() usecase.CustomerValidator {
	return &customerValidator{}
}

// 顧客作成の入力を検証
func (v *customerValidator) ValidateCreate(in usecase.CreateCustomerInput) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return invalid("first_name", "is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return invalid("last_name", "is required")
	}
	if err := validateEmail(in.Email); err != nil {
		return err
	}
	return validateLengths(customerLengths{
		firstName: in.FirstName, lastName: in.LastName, phone: in.Phone,
		address: in.Address, city: in.City, country: in.Country, postalCode: in.PostalCode,
	})
}

// 部分更新。指定されたフィールドだけ見る
func (v *customerValidator) ValidatePatch(p repo.CustomerPatch) error {
	if p.IsEmpty() {
		return invalid("body", "has nothing to update")
	}
	if p.FirstName != nil && strings.TrimSpace(*p.FirstName) == "" {
		return invalid("first_name", "must not be empty")
	}
	if p.LastName != nil && strings.TrimSpace(*p.LastName) == "" {
		return invalid("last_name", "must not be empty")
	}
	if p.Email != nil {
		if err := validateEmail(*p.Email); err != nil {
			return err
		}
	}
	return validateLengths(customerLengths{
		firstName: deref(p.FirstName), lastName: deref(p.LastName), phone: deref(p.Phone),
		address: deref(p.Address), city: deref(p.City), country: deref(p.Country), postalCode: deref(p.PostalCode),
	})
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return invalid("email", "is required")
	}
	if len(email) > 255 || !emailRe.MatchString(email) {
		return invalid("email", "is invalid")
	}
	return nil
}

type customerLengths struct {
	firstName, lastName, phone, address, city, country, postalCode string
}

// カラム長に合わせる（超えるとDBで500になる）
func validateLengths(c customerLengths) error {
	limits := []struct {
		field string
		value string
		max   int
	}{
		{"first_name", c.firstName, 100},
		{"last_name", c.lastName, 100},
		{"phone", c.phone, 30},
		{"address", c.address, 255},
		{"city", c.city, 100},
		{"country", c.country, 100},
		{"postal_code", c.postalCode, 20},
	}
	for _, l := range limits {
		if len(l.value) > l.max {
			return invalid(l.field, "is too long")
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
