package templates

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/repository"
	"tailorshop/internal/sideeffect"

	"gorm.io/datatypes"
)

type Service struct {
	templates TemplateRepository
	sink      sideeffect.Sink
}

func NewService(templates TemplateRepository, sink sideeffect.Sink) *Service {
	return &Service{templates: templates, sink: sink}
}

func (s *Service) List(ctx context.Context, f repository.TemplateFilter, p pagination.Params) ([]domain.MeasurementTemplate, int64, error) {
	return s.templates.List(ctx, f, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.MeasurementTemplate, error) {
	return s.templates.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor access.Principal, req TemplateRequest) (*domain.MeasurementTemplate, error) {
	if err := checkFields(req.Fields); err != nil {
		return nil, err
	}
	units := domain.Units(req.Units)
	if units == "" {
		units = domain.UnitsMetric
	}
	t := &domain.MeasurementTemplate{
		Name:        strings.TrimSpace(req.Name),
		GarmentType: strings.TrimSpace(req.GarmentType),
		Region:      strings.TrimSpace(req.Region),
		Units:       units,
		Fields:      datatypes.NewJSONType(req.Fields),
	}
	if actor.ID != 0 {
		t.CreatedBy = &actor.ID
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "create", string(access.Templates), t.ID, nil))
	return t, nil
}

func (s *Service) Update(ctx context.Context, actor access.Principal, id int64, req UpdateTemplateRequest) (*domain.MeasurementTemplate, error) {
	t, err := s.templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Fields != nil {
		if err := checkFields(*req.Fields); err != nil {
			return nil, err
		}
		t.Fields = datatypes.NewJSONType(*req.Fields)
	}
	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.GarmentType != nil {
		t.GarmentType = strings.TrimSpace(*req.GarmentType)
	}
	if req.Region != nil {
		t.Region = strings.TrimSpace(*req.Region)
	}
	if req.Units != nil {
		t.Units = domain.Units(*req.Units)
	}
	if err := s.templates.Update(ctx, t); err != nil {
		return nil, err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "update", string(access.Templates), t.ID, nil))
	return t, nil
}

func (s *Service) Delete(ctx context.Context, actor access.Principal, id int64) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return err
	}
	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "delete", string(access.Templates), id, nil))
	return nil
}

// checkFields accepts only known measurement fields with consistent bounds.
func checkFields(fields map[string]domain.TemplateField) error {
	var problems []string
	for name, f := range fields {
		if !domain.IsMeasurementField(name) {
			problems = append(problems, fmt.Sprintf("%s is not a measurement field", name))
			continue
		}
		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			problems = append(problems, fmt.Sprintf("%s: min must not exceed max", name))
		}
		if f.Default != nil {
			if (f.Min != nil && *f.Default < *f.Min) || (f.Max != nil && *f.Default > *f.Max) {
				problems = append(problems, fmt.Sprintf("%s: default must lie within min and max", name))
			}
		}
	}
	if len(problems) > 0 {
		sort.Strings(problems)
		return apperr.Validation("invalid template fields", problems...)
	}
	return nil
}
