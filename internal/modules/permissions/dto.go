package permissions

import "tailorshop/internal/access"

type PermissionRequest struct {
	Role         string `json:"role" validate:"required,oneof=admin manager tailor customer"`
	ResourceType string `json:"resource_type" validate:"required,max=50"`
	Action       string `json:"action" validate:"required,oneof=read create update delete execute *"`
}

// Effective is the caller's resolved grant set.
type Effective struct {
	Role   string         `json:"role"`
	Grants []access.Grant `json:"grants"`
}
