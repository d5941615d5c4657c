package measurements

import (
	"context"
	"strings"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/sideeffect"
)

func (s *Service) ListProfiles(ctx context.Context, customerID int64, p pagination.Params) ([]domain.MeasurementProfile, int64, error) {
	return s.profiles.ListByCustomer(ctx, customerID, p)
}

func (s *Service) CreateProfile(ctx context.Context, actor access.Principal, customerID int64, req ProfileRequest) (*domain.MeasurementProfile, error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	p := &domain.MeasurementProfile{
		CustomerID:  customerID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if actor.ID != 0 {
		p.CreatedBy = &actor.ID
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "create", string(access.Profiles), p.ID, map[string]any{"customer_id": customerID}))
	return p, nil
}

// DeleteProfile detaches the profile's measurements before removing it.
func (s *Service) DeleteProfile(ctx context.Context, actor access.Principal, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.profiles.GetByID(ctx, id); err != nil {
			return err
		}
		if err := s.measurements.ClearProfile(ctx, id); err != nil {
			return err
		}
		return s.profiles.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "delete", string(access.Profiles), id, nil))
	return nil
}

func (s *Service) ListFeedback(ctx context.Context, measurementID int64, p pagination.Params) ([]domain.GarmentFeedback, int64, error) {
	return s.feedback.ListByMeasurement(ctx, measurementID, p)
}

func (s *Service) CreateFeedback(ctx context.Context, actor access.Principal, measurementID int64, req FeedbackRequest) (*domain.GarmentFeedback, error) {
	if _, err := s.measurements.GetByID(ctx, measurementID); err != nil {
		return nil, err
	}
	f := &domain.GarmentFeedback{
		MeasurementID: measurementID,
		OrderID:       req.OrderID,
		GarmentType:   strings.TrimSpace(req.GarmentType),
		FitFeedback:   domain.FitFeedback(req.FitFeedback),
		Notes:         req.Notes,
	}
	if actor.ID != 0 {
		f.CreatedBy = &actor.ID
	}
	if err := s.feedback.Create(ctx, f); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "create", string(access.Feedback), f.ID, map[string]any{"fit_feedback": f.FitFeedback}))
	return f, nil
}
