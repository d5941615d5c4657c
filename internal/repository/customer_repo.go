package repository

import (
	"context"

	"tailorshop/internal/database"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	crud[domain.Customer]
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{crud: newCrud[domain.Customer](db, nil, database.TableCustomers, "customer")}
}

type CustomerFilter struct {
	Search string
	Branch string
}

// CustomerRefs counts the rows that point at a customer.
type CustomerRefs struct {
	Measurements int64 `json:"measurements"`
	Orders       int64 `json:"orders"`
	Fittings     int64 `json:"fittings"`
}

func (r *CustomerRepository) List(ctx context.Context, f CustomerFilter, p pagination.Params) ([]domain.Customer, int64, error) {
	return r.page(ctx, p, "id DESC",
		when(f.Branch != "", eq("branch", f.Branch)),
		like(f.Search, "name", "phone", "email"),
	)
}

// FindByPhone returns the most recent customer with exactly phone, or NotFound.
func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	var c domain.Customer
	if err := db.Where("phone = ?", phone).Order("id DESC").First(&c).Error; err != nil {
		return nil, r.classify(err)
	}
	return &c, nil
}

func (r *CustomerRepository) Refs(ctx context.Context, id int64) (CustomerRefs, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return CustomerRefs{}, err
	}
	var refs CustomerRefs
	counts := []struct {
		model any
		dst   *int64
	}{
		{&domain.Measurement{}, &refs.Measurements},
		{&domain.Order{}, &refs.Orders},
		{&domain.Fitting{}, &refs.Fittings},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where("customer_id = ?", id).Count(c.dst).Error; err != nil {
			return CustomerRefs{}, r.classify(err)
		}
	}
	return refs, nil
}
