package orders

import (
	"context"
	"strings"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/pkg/request"
	"tailorshop/internal/repository"
	"tailorshop/internal/sideeffect"

	"github.com/shopspring/decimal"
)

type Service struct {
	orders       OrderRepository
	customers    CustomerLookup
	measurements MeasurementLookup
	sink         sideeffect.Sink
}

func NewService(orders OrderRepository, customers CustomerLookup, measurements MeasurementLookup, sink sideeffect.Sink) *Service {
	return &Service{orders: orders, customers: customers, measurements: measurements, sink: sink}
}

func (s *Service) List(ctx context.Context, f repository.OrderFilter, p pagination.Params) ([]domain.Order, int64, error) {
	return s.orders.List(ctx, f, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c, err := s.customers.GetByID(ctx, o.CustomerID); err == nil {
		o.Customer = c
	}
	return o, nil
}

func (s *Service) Create(ctx context.Context, actor access.Principal, req OrderRequest) (*domain.Order, error) {
	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkMeasurement(ctx, req.MeasurementID, req.CustomerID); err != nil {
		return nil, err
	}
	delivery, err := parseDate(req.DeliveryDate)
	if err != nil {
		return nil, err
	}
	o := &domain.Order{
		CustomerID:    req.CustomerID,
		MeasurementID: req.MeasurementID,
		GarmentType:   strings.TrimSpace(req.GarmentType),
		Fabric:        strings.TrimSpace(req.Fabric),
		Status:        domain.OrderPending,
		DeliveryDate:  delivery,
		Price:         amount(req.Price),
		Deposit:       amount(req.Deposit),
		Notes:         req.Notes,
	}
	if req.Status != "" {
		o.Status = domain.OrderStatus(req.Status)
	}
	if err := checkAmounts(o.Price, o.Deposit); err != nil {
		return nil, err
	}
	if actor.ID != 0 {
		o.CreatedBy = &actor.ID
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	o.Customer = customer
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "create", string(access.Orders), o.ID, map[string]any{
		"customer_id": o.CustomerID,
		"price":       o.Price.StringFixed(2),
	}))
	return o, nil
}

func (s *Service) Update(ctx context.Context, actor access.Principal, id int64, req UpdateOrderRequest) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := o.Status

	if req.MeasurementID != nil {
		if *req.MeasurementID == 0 {
			o.MeasurementID = nil
		} else {
			if err := s.checkMeasurement(ctx, req.MeasurementID, o.CustomerID); err != nil {
				return nil, err
			}
			o.MeasurementID = req.MeasurementID
		}
	}
	if req.GarmentType != nil {
		o.GarmentType = strings.TrimSpace(*req.GarmentType)
	}
	if req.Fabric != nil {
		o.Fabric = strings.TrimSpace(*req.Fabric)
	}
	if req.Status != nil {
		o.Status = domain.OrderStatus(*req.Status)
	}
	if req.DeliveryDate != nil {
		if o.DeliveryDate, err = parseDate(req.DeliveryDate); err != nil {
			return nil, err
		}
	}
	if req.Price != nil {
		o.Price = req.Price.Round(2)
	}
	if req.Deposit != nil {
		o.Deposit = req.Deposit.Round(2)
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}
	if err := checkAmounts(o.Price, o.Deposit); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	details := map[string]any{}
	if before != o.Status {
		details["status"] = map[string]any{"old": before, "new": o.Status}
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "update", string(access.Orders), o.ID, details))
	return o, nil
}

func (s *Service) Delete(ctx context.Context, actor access.Principal, id int64) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "delete", string(access.Orders), id, nil))
	return nil
}

func (s *Service) checkMeasurement(ctx context.Context, measurementID *int64, customerID int64) error {
	if measurementID == nil {
		return nil
	}
	m, err := s.measurements.GetByID(ctx, *measurementID)
	if err != nil {
		return err
	}
	if m.CustomerID != customerID {
		return ErrMeasurementCustomer
	}
	return nil
}

func checkAmounts(price, deposit decimal.Decimal) error {
	if price.IsNegative() || deposit.IsNegative() {
		return ErrNegativeAmount
	}
	if deposit.GreaterThan(price) {
		return ErrDepositExceedsPrice
	}
	return nil
}

func amount(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return d.Round(2)
}

// parseDate reads an optional date; an empty string clears it.
func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := request.ParseTime(strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperr.Validation("invalid delivery_date: use RFC 3339 or YYYY-MM-DD")
	}
	return &t, nil
}
