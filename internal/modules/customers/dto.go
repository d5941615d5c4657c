package customers

import (
	"tailorshop/internal/domain"
	"tailorshop/internal/repository"
)

type CustomerRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Phone   string `json:"phone" validate:"max=32"`
	Email   string `json:"email" validate:"omitempty,email,max=255"`
	Address string `json:"address" validate:"max=1000"`
	Notes   string `json:"notes" validate:"max=4000"`
	Branch  string `json:"branch" validate:"max=100"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=32"`
	Email   *string `json:"email" validate:"omitempty,email,max=255"`
	Address *string `json:"address" validate:"omitempty,max=1000"`
	Notes   *string `json:"notes" validate:"omitempty,max=4000"`
	Branch  *string `json:"branch" validate:"omitempty,max=100"`
}

// CustomerDetail is a customer with the number of rows that reference it.
type CustomerDetail struct {
	domain.Customer
	Counts repository.CustomerRefs `json:"counts"`
}
