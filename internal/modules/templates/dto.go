package templates

import "tailorshop/internal/domain"

type TemplateRequest struct {
	Name        string                          `json:"name" validate:"required,max=255"`
	GarmentType string                          `json:"garment_type" validate:"required,max=50"`
	Region      string                          `json:"region" validate:"max=50"`
	Units       string                          `json:"units" validate:"omitempty,oneof=cm in"`
	Fields      map[string]domain.TemplateField `json:"fields" validate:"required,min=1"`
}

type UpdateTemplateRequest struct {
	Name        *string                          `json:"name" validate:"omitempty,min=1,max=255"`
	GarmentType *string                          `json:"garment_type" validate:"omitempty,min=1,max=50"`
	Region      *string                          `json:"region" validate:"omitempty,max=50"`
	Units       *string                          `json:"units" validate:"omitempty,oneof=cm in"`
	Fields      *map[string]domain.TemplateField `json:"fields" validate:"omitempty,min=1"`
}
