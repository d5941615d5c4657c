package users

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin manager tailor customer"`
	Branch   string `json:"branch" validate:"max=100"`
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin manager tailor customer"`
	Branch   *string `json:"branch" validate:"omitempty,max=100"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}
