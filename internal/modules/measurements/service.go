package measurements

import (
	"context"
	"strings"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/domain"
	"tailorshop/internal/measure"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"
	"tailorshop/internal/pkg/phone"
	"tailorshop/internal/repository"
	"tailorshop/internal/sideeffect"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const entryIDPrefix = "MS-"

type Service struct {
	measurements MeasurementRepository
	customers    CustomerRepository
	rules        RuleSource
	profiles     ProfileRepository
	feedback     FeedbackRepository
	tx           Transactor
	sink         sideeffect.Sink

	validity time.Duration
	region   string
	now      func() time.Time
}

func NewService(
	measurements MeasurementRepository,
	customers CustomerRepository,
	rules RuleSource,
	profiles ProfileRepository,
	feedback FeedbackRepository,
	tx Transactor,
	sink sideeffect.Sink,
	validityDays int,
	region string,
) *Service {
	if validityDays <= 0 {
		validityDays = 365
	}
	return &Service{
		measurements: measurements,
		customers:    customers,
		rules:        rules,
		profiles:     profiles,
		feedback:     feedback,
		tx:           tx,
		sink:         sink,
		validity:     time.Duration(validityDays) * 24 * time.Hour,
		region:       region,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) List(ctx context.Context, f repository.MeasurementFilter, p pagination.Params) ([]domain.Measurement, int64, error) {
	return s.measurements.List(ctx, f, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Measurement, error) {
	return s.measurements.GetWithCustomer(ctx, id)
}

func (s *Service) History(ctx context.Context, id int64) ([]domain.MeasurementHistory, error) {
	if _, err := s.measurements.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.measurements.History(ctx, id)
}

// Validate runs the range checks and the configured rules without saving anything.
func (s *Service) Validate(ctx context.Context, data map[string]any) (*Check, error) {
	if id, err := optionalID(data, "customer_id"); err == nil && id != nil {
		if c, err := s.customers.GetByID(ctx, *id); err == nil {
			data = withCustomer(data, c)
		}
	}
	units := unitsOf(data, domain.UnitsMetric)
	res := measure.ValidateMeasurement(data, units)
	rules, err := s.checkRules(ctx, data)
	if err != nil {
		return nil, err
	}
	return &Check{
		IsValid:    res.IsValid && rules.IsValid,
		Errors:     res.Errors,
		RuleErrors: rules.Errors,
		Warnings:   rules.Warnings,
	}, nil
}

// Create validates data, resolves or creates the customer and stores version 1 with
// a "created" history row, all in one transaction.
func (s *Service) Create(ctx context.Context, actor access.Principal, data map[string]any) (*Result, error) {
	customerID, err := optionalID(data, "customer_id")
	if err != nil {
		return nil, err
	}
	profileID, err := optionalID(data, "profile_id")
	if err != nil {
		return nil, err
	}

	var customer *domain.Customer
	if customerID != nil {
		if customer, err = s.customers.GetByID(ctx, *customerID); err != nil {
			return nil, err
		}
		data = withCustomer(data, customer)
	}

	units := unitsOf(data, domain.UnitsMetric)
	if res := measure.ValidateMeasurement(data, units); !res.IsValid {
		return nil, apperr.Validation("measurement validation failed", res.Errors...)
	}
	check, err := s.checkRules(ctx, data)
	if err != nil {
		return nil, err
	}
	if !check.IsValid {
		return nil, apperr.Validation("measurement violates validation rules", messages(check.Errors)...)
	}

	now := s.now()
	expires := now.Add(s.validity)
	m := &domain.Measurement{
		EntryID:           newEntryID(),
		ProfileID:         profileID,
		Units:             units,
		FitPreference:     str(data["fit_preference"]),
		Notes:             str(data["notes"]),
		Version:           1,
		ExpiresAt:         &expires,
		Branch:            str(data["branch"]),
		MeasurementValues: measure.ToValues(data),
	}
	if actor.ID != 0 {
		m.CreatedBy = &actor.ID
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		c, err := s.resolveCustomer(ctx, actor, customer, data)
		if err != nil {
			return err
		}
		customer = c
		m.CustomerID = c.ID
		if err := s.checkProfile(ctx, m.ProfileID, c.ID); err != nil {
			return err
		}
		if err := s.measurements.Create(ctx, m); err != nil {
			return err
		}
		return s.measurements.AppendHistory(ctx, &domain.MeasurementHistory{
			MeasurementID: m.ID,
			Version:       m.Version,
			Action:        domain.HistoryCreated,
			Changes:       datatypes.JSONMap(m.MeasurementValues.Map()),
			ChangedBy:     m.CreatedBy,
		})
	})
	if err != nil {
		return nil, err
	}
	m.Customer = customer

	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "create", string(access.Measurements), m.ID, map[string]any{"entry_id": m.EntryID}))
	return &Result{Measurement: m, Warnings: check.Warnings}, nil
}

// Update merges data into the stored values, bumps the version, clears expiry and
// records a {field:{old,new}} diff.
func (s *Service) Update(ctx context.Context, actor access.Principal, id int64, data map[string]any) (*Result, error) {
	m, err := s.measurements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := m.MeasurementValues.Map()
	for _, field := range domain.MeasurementFields {
		v, ok := data[field]
		if !ok {
			continue
		}
		if v == nil {
			delete(merged, field)
		} else {
			merged[field] = v
		}
	}
	units := unitsOf(data, m.Units)
	if res := measure.ValidateValues(merged, units); !res.IsValid {
		return nil, apperr.Validation("measurement validation failed", res.Errors...)
	}
	check, err := s.checkRules(ctx, merged)
	if err != nil {
		return nil, err
	}
	if !check.IsValid {
		return nil, apperr.Validation("measurement violates validation rules", messages(check.Errors)...)
	}

	next := measure.ToValues(merged)
	diff := map[string]any{}
	for _, field := range domain.MeasurementFields {
		before, after := m.Get(field), next.Get(field)
		if !sameValue(before, after) {
			diff[field] = change(value(before), value(after))
		}
	}
	if units != m.Units {
		diff["units"] = change(m.Units, units)
		m.Units = units
	}
	for key, dst := range map[string]*string{
		"fit_preference": &m.FitPreference,
		"notes":          &m.Notes,
		"branch":         &m.Branch,
	} {
		if _, ok := data[key]; !ok {
			continue
		}
		if v := str(data[key]); v != *dst {
			diff[key] = change(*dst, v)
			*dst = v
		}
	}
	if _, ok := data["profile_id"]; ok {
		profileID, err := optionalID(data, "profile_id")
		if err != nil {
			return nil, err
		}
		if !sameID(profileID, m.ProfileID) {
			diff["profile_id"] = change(value(m.ProfileID), value(profileID))
			m.ProfileID = profileID
		}
	}
	if len(diff) == 0 {
		return nil, ErrNoChanges
	}

	m.MeasurementValues = next
	m.Version++
	m.IsExpired = false
	expires := s.now().Add(s.validity)
	m.ExpiresAt = &expires

	var changedBy *int64
	if actor.ID != 0 {
		changedBy = &actor.ID
	}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, ok := diff["profile_id"]; ok {
			if err := s.checkProfile(ctx, m.ProfileID, m.CustomerID); err != nil {
				return err
			}
		}
		if err := s.measurements.Update(ctx, m); err != nil {
			return err
		}
		return s.measurements.AppendHistory(ctx, &domain.MeasurementHistory{
			MeasurementID: m.ID,
			Version:       m.Version,
			Action:        domain.HistoryUpdated,
			Changes:       datatypes.JSONMap(diff),
			ChangedBy:     changedBy,
		})
	})
	if err != nil {
		return nil, err
	}

	s.sink.Audit(ctx, sideeffect.AuditOf(actor.ID, "update", string(access.Measurements), m.ID, map[string]any{"version": m.Version}))
	return &Result{Measurement: m, Warnings: check.Warnings}, nil
}

func (s *Service) checkRules(ctx context.Context, data map[string]any) (measure.RuleCheck, error) {
	rules, err := s.rules.Active(ctx)
	if err != nil {
		return measure.RuleCheck{}, err
	}
	return measure.CheckRules(rules, data), nil
}

func (s *Service) checkProfile(ctx context.Context, profileID *int64, customerID int64) error {
	if profileID == nil {
		return nil
	}
	p, err := s.profiles.GetByID(ctx, *profileID)
	if err != nil {
		return err
	}
	if p.CustomerID != customerID {
		return ErrProfileCustomer
	}
	return nil
}

// resolveCustomer returns known, else the customer with the payload phone, else a new one.
func (s *Service) resolveCustomer(ctx context.Context, actor access.Principal, known *domain.Customer, data map[string]any) (*domain.Customer, error) {
	if known != nil {
		return known, nil
	}
	number := phone.Normalize(str(data["phone"]), s.region)
	if number != "" {
		c, err := s.customers.FindByPhone(ctx, number)
		if err == nil {
			return c, nil
		}
		if !apperr.Is(err, apperr.KindNotFound) {
			return nil, err
		}
	}
	name := str(data["name"])
	if name == "" {
		name = number
	}
	c := &domain.Customer{
		Name:   name,
		Phone:  number,
		Email:  str(data["email"]),
		Branch: str(data["branch"]),
	}
	if actor.ID != 0 {
		c.CreatedBy = &actor.ID
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func newEntryID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return entryIDPrefix + strings.ToUpper(raw[:8])
}

// withCustomer copies data and fills name and phone from c where the payload has none.
func withCustomer(data map[string]any, c *domain.Customer) map[string]any {
	out := make(map[string]any, len(data)+2)
	for k, v := range data {
		out[k] = v
	}
	if str(out["name"]) == "" {
		out["name"] = c.Name
	}
	if str(out["phone"]) == "" {
		out["phone"] = c.Phone
	}
	return out
}

func unitsOf(data map[string]any, fallback domain.Units) domain.Units {
	if u := str(data["units"]); u != "" {
		return domain.Units(strings.ToLower(u))
	}
	return fallback
}

func optionalID(data map[string]any, key string) (*int64, error) {
	raw, ok := data[key]
	if !ok || raw == nil || str(raw) == "" && isString(raw) {
		return nil, nil
	}
	f, ok := measure.Number(raw)
	if !ok || f <= 0 || f != float64(int64(f)) {
		return nil, apperr.Validation("invalid " + key)
	}
	id := int64(f)
	return &id, nil
}

func messages(vs []measure.Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Message
	}
	return out
}

func change(before, after any) map[string]any {
	return map[string]any{"old": before, "new": after}
}

func value[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func sameValue(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}
