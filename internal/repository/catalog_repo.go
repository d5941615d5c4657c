package repository

import (
	"context"

	"tailorshop/internal/database"
	"tailorshop/internal/domain"
	"tailorshop/internal/pkg/pagination"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	crud[domain.MeasurementProfile]
}

func NewProfileRepository(db *gorm.DB, schema *database.Schema) *ProfileRepository {
	return &ProfileRepository{crud: newCrud[domain.MeasurementProfile](db, schema, database.TableProfiles, "profile")}
}

func (r *ProfileRepository) ListByCustomer(ctx context.Context, customerID int64, p pagination.Params) ([]domain.MeasurementProfile, int64, error) {
	return r.page(ctx, p, "id", eq("customer_id", customerID))
}

type TemplateRepository struct {
	crud[domain.MeasurementTemplate]
}

func NewTemplateRepository(db *gorm.DB, schema *database.Schema) *TemplateRepository {
	return &TemplateRepository{crud: newCrud[domain.MeasurementTemplate](db, schema, database.TableTemplates, "template")}
}

type TemplateFilter struct {
	GarmentType string
	Region      string
	Units       string
	Search      string
}

func (r *TemplateRepository) List(ctx context.Context, f TemplateFilter, p pagination.Params) ([]domain.MeasurementTemplate, int64, error) {
	return r.page(ctx, p, "name, id",
		when(f.GarmentType != "", eq("garment_type", f.GarmentType)),
		when(f.Region != "", eq("region", f.Region)),
		when(f.Units != "", eq("units", f.Units)),
		like(f.Search, "name"),
	)
}

type RuleRepository struct {
	crud[domain.ValidationRule]
}

func NewRuleRepository(db *gorm.DB, schema *database.Schema) *RuleRepository {
	return &RuleRepository{crud: newCrud[domain.ValidationRule](db, schema, database.TableValidationRules, "validation rule")}
}

func (r *RuleRepository) List(ctx context.Context, activeOnly bool, p pagination.Params) ([]domain.ValidationRule, int64, error) {
	return r.page(ctx, p, "id", when(activeOnly, eq("is_active", true)))
}

// Active returns all active rules. A missing table yields no rules.
func (r *RuleRepository) Active(ctx context.Context) ([]domain.ValidationRule, error) {
	if !r.schema.Has(r.table) {
		return []domain.ValidationRule{}, nil
	}
	db := database.Conn(ctx, r.db)
	out := []domain.ValidationRule{}
	if err := db.Where("is_active = ?", true).Order("id").Find(&out).Error; err != nil {
		if database.IsUndefinedTable(err) {
			r.schema.MarkMissing(r.table)
			return []domain.ValidationRule{}, nil
		}
		return nil, r.classify(err)
	}
	return out, nil
}

type ExpiryRuleRepository struct {
	crud[domain.ExpiryRule]
}

func NewExpiryRuleRepository(db *gorm.DB, schema *database.Schema) *ExpiryRuleRepository {
	return &ExpiryRuleRepository{crud: newCrud[domain.ExpiryRule](db, schema, database.TableExpiryRules, "expiry rule")}
}

func (r *ExpiryRuleRepository) List(ctx context.Context, p pagination.Params) ([]domain.ExpiryRule, int64, error) {
	return r.page(ctx, p, "id")
}

func (r *ExpiryRuleRepository) Active(ctx context.Context) ([]domain.ExpiryRule, error) {
	db, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}
	out := []domain.ExpiryRule{}
	if err := db.Where("is_active = ?", true).Order("id").Find(&out).Error; err != nil {
		return nil, r.classify(err)
	}
	return out, nil
}

type FeedbackRepository struct {
	crud[domain.GarmentFeedback]
}

func NewFeedbackRepository(db *gorm.DB, schema *database.Schema) *FeedbackRepository {
	return &FeedbackRepository{crud: newCrud[domain.GarmentFeedback](db, schema, database.TableFeedback, "feedback")}
}

func (r *FeedbackRepository) ListByMeasurement(ctx context.Context, measurementID int64, p pagination.Params) ([]domain.GarmentFeedback, int64, error) {
	return r.page(ctx, p, "id DESC", eq("measurement_id", measurementID))
}
