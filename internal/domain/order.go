package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderInProgress OrderStatus = "in_progress"
	OrderReady      OrderStatus = "ready"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderInProgress, OrderReady, OrderDelivered, OrderCancelled}

type Order struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	CustomerID    int64           `json:"customer_id" gorm:"not null;index"`
	MeasurementID *int64          `json:"measurement_id,omitempty" gorm:"index"`
	GarmentType   string          `json:"garment_type,omitempty" gorm:"size:50"`
	Fabric        string          `json:"fabric,omitempty" gorm:"size:255"`
	Status        OrderStatus     `json:"status" gorm:"size:20;not null;default:pending;index"`
	DeliveryDate  *time.Time      `json:"delivery_date,omitempty"`
	Price         decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null;default:0"`
	Deposit       decimal.Decimal `json:"deposit" gorm:"type:numeric(12,2);not null;default:0"`
	Notes         string          `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy     *int64          `json:"created_by,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Order) TableName() string { return "orders" }

type FittingStatus string

const (
	FittingScheduled FittingStatus = "scheduled"
	FittingCompleted FittingStatus = "completed"
	FittingCancelled FittingStatus = "cancelled"
	FittingNoShow    FittingStatus = "no_show"
)

var FittingStatuses = []FittingStatus{FittingScheduled, FittingCompleted, FittingCancelled, FittingNoShow}

type Fitting struct {
	ID            int64         `json:"id" gorm:"primaryKey"`
	CustomerID    int64         `json:"customer_id" gorm:"not null;index"`
	MeasurementID *int64        `json:"measurement_id,omitempty" gorm:"index"`
	OrderID       *int64        `json:"order_id,omitempty" gorm:"index"`
	TailorID      *int64        `json:"tailor_id,omitempty" gorm:"index"`
	ScheduledAt   time.Time     `json:"scheduled_at" gorm:"not null;index"`
	Status        FittingStatus `json:"status" gorm:"size:20;not null;default:scheduled"`
	Notes         string        `json:"notes,omitempty" gorm:"type:text"`
	Branch        string        `json:"branch,omitempty" gorm:"size:100"`
	CreatedBy     *int64        `json:"created_by,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (Fitting) TableName() string { return "fittings" }
