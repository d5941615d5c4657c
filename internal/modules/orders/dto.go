package orders

import "github.com/shopspring/decimal"

type OrderRequest struct {
	CustomerID    int64            `json:"customer_id" validate:"required,gt=0"`
	MeasurementID *int64           `json:"measurement_id" validate:"omitempty,gt=0"`
	GarmentType   string           `json:"garment_type" validate:"max=50"`
	Fabric        string           `json:"fabric" validate:"max=255"`
	Status        string           `json:"status" validate:"omitempty,oneof=pending in_progress ready delivered cancelled"`
	DeliveryDate  *string          `json:"delivery_date"`
	Price         *decimal.Decimal `json:"price"`
	Deposit       *decimal.Decimal `json:"deposit"`
	Notes         string           `json:"notes" validate:"max=4000"`
}

type UpdateOrderRequest struct {
	MeasurementID *int64           `json:"measurement_id" validate:"omitempty,gte=0"`
	GarmentType   *string          `json:"garment_type" validate:"omitempty,max=50"`
	Fabric        *string          `json:"fabric" validate:"omitempty,max=255"`
	Status        *string          `json:"status" validate:"omitempty,oneof=pending in_progress ready delivered cancelled"`
	DeliveryDate  *string          `json:"delivery_date"`
	Price         *decimal.Decimal `json:"price"`
	Deposit       *decimal.Decimal `json:"deposit"`
	Notes         *string          `json:"notes" validate:"omitempty,max=4000"`
}
