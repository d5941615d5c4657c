package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"tailorshop/internal/access"
	"tailorshop/internal/config"
	"tailorshop/internal/database"
	"tailorshop/internal/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config:", err)
	}
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	defer database.Close(db)

	log.Println("Preparing schema...")
	if err := database.Prepare(db, cfg.Database); err != nil {
		log.Fatal("schema failed:", err)
	}

	err = database.WithTx(context.Background(), db, func(_ context.Context, tx *gorm.DB) error {
		return seed(tx)
	})
	if err != nil {
		log.Fatal("seed failed:", err)
	}
	log.Println("Seed completed")
}

// cleanupOrder lists tables children first.
var cleanupOrder = []string{
	"notifications", "audit_logs", "backup_logs", "task_assignments", "reminders", "garment_feedback",
	"fittings", "orders", "measurement_history", "measurements", "measurement_profiles",
	"measurement_templates", "expiry_rules", "validation_rules", "permissions", "customers", "users",
}

func seed(db *gorm.DB) error {
	log.Println("Cleaning existing data...")
	for _, table := range cleanupOrder {
		if db.Migrator().HasTable(table) {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
	}

	// ================== USERS ==================
	log.Println("Creating users...")
	staff := []struct {
		name, email, password string
		role                  domain.UserRole
	}{
		{"Shop Admin", "admin@tailorshop.local", "admin1234", domain.RoleAdmin},
		{"Front Desk", "manager@tailorshop.local", "manager1234", domain.RoleManager},
		{"Amara Okafor", "amara@tailorshop.local", "tailor1234", domain.RoleTailor},
		{"Luca Bianchi", "luca@tailorshop.local", "tailor1234", domain.RoleTailor},
	}
	users := make(map[string]*domain.User, len(staff))
	for _, s := range staff {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u := &domain.User{Name: s.name, Email: s.email, PasswordHash: string(hash), Role: s.role, Branch: "main"}
		if err := db.Create(u).Error; err != nil {
			return err
		}
		users[s.email] = u
		log.Printf("%s: %s / %s", s.role, s.email, s.password)
	}

	// ================== CATALOG ==================
	log.Println("Creating validation rules, expiry rules and templates...")
	rules := []domain.ValidationRule{
		{RuleKey: "chest_gte_waist_warning", RuleType: domain.RuleWarning, FieldA: "chest", FieldB: "waist",
			Operator: domain.OpGTE, Message: "Chest ({{a}}) is smaller than waist ({{b}}); please double-check", IsActive: true},
		{RuleKey: "inseam_lt_trouser", RuleType: domain.RuleImpossible, FieldA: "inseam", FieldB: "trouser_length",
			Operator: domain.OpLT, Message: "Inseam ({{a}}) must be shorter than trouser length ({{b}})", IsActive: true},
		{RuleKey: "neck_lt_chest", RuleType: domain.RuleImpossible, FieldA: "neck", FieldB: "chest",
			Operator: domain.OpLT, Message: "Neck ({{a}}) must be smaller than chest ({{b}})", IsActive: true},
	}
	if err := db.Create(&rules).Error; err != nil {
		return err
	}

	year := 365
	if err := db.Create(&domain.ExpiryRule{Name: "Re-measure yearly", DaysSinceUpdated: &year, Action: domain.ExpiryRemindOnly, IsActive: true}).Error; err != nil {
		return err
	}

	f := func(v float64) *float64 { return &v }
	template := domain.MeasurementTemplate{
		Name: "Classic suit", GarmentType: "suit", Units: domain.UnitsMetric,
		Fields: datatypes.NewJSONType(map[string]domain.TemplateField{
			"chest":         {Min: f(80), Max: f(140), Default: f(100)},
			"waist":         {Min: f(60), Max: f(130), Default: f(86)},
			"jacket_length": {Min: f(65), Max: f(85), Default: f(74)},
			"sleeve_length": {Min: f(55), Max: f(70), Default: f(62)},
		}),
	}
	if err := db.Create(&template).Error; err != nil {
		return err
	}

	// ================== PERMISSIONS ==================
	log.Println("Mirroring the default policy into permissions...")
	policy := access.DefaultPolicy()
	var perms []domain.Permission
	for _, role := range domain.AllRoles {
		for _, g := range policy.Effective(role) {
			perms = append(perms, domain.Permission{Role: role, ResourceType: string(g.Resource), Action: string(g.Action)})
		}
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&perms, 100).Error; err != nil {
		return err
	}

	// ================== CUSTOMERS & WORK ==================
	log.Println("Creating customers, measurements, orders and fittings...")
	manager := users["manager@tailorshop.local"]
	tailor := users["amara@tailorshop.local"]
	now := time.Now().UTC()

	customers := []domain.Customer{
		{Name: "Grace Hopper", Phone: "+12025550143", Email: "grace@example.com", Branch: "main", CreatedBy: &manager.ID},
		{Name: "Alan Turing", Phone: "+442079460958", Email: "alan@example.com", Branch: "main", CreatedBy: &manager.ID},
	}
	if err := db.Create(&customers).Error; err != nil {
		return err
	}

	for i, c := range customers {
		expires := now.AddDate(1, 0, 0)
		m := domain.Measurement{
			EntryID: fmt.Sprintf("MS-SEED%04d", i+1), CustomerID: c.ID, Units: domain.UnitsMetric,
			FitPreference: "regular", Version: 1, ExpiresAt: &expires, CreatedBy: &tailor.ID, Branch: "main",
			MeasurementValues: domain.MeasurementValues{Chest: f(98 + float64(i)*4), Waist: f(84 + float64(i)*3), Neck: f(39), Inseam: f(80), TrouserLength: f(104)},
		}
		if err := db.Create(&m).Error; err != nil {
			return err
		}
		if err := db.Create(&domain.MeasurementHistory{MeasurementID: m.ID, Version: 1, Action: domain.HistoryCreated,
			Changes: datatypes.JSONMap(m.MeasurementValues.Map()), ChangedBy: &tailor.ID}).Error; err != nil {
			return err
		}

		delivery := now.AddDate(0, 0, 21+i*7)
		order := domain.Order{
			CustomerID: c.ID, MeasurementID: &m.ID, GarmentType: "suit", Fabric: "navy wool",
			Status: domain.OrderInProgress, DeliveryDate: &delivery,
			Price: decimal.NewFromInt(650), Deposit: decimal.NewFromInt(200), CreatedBy: &manager.ID,
		}
		if err := db.Create(&order).Error; err != nil {
			return err
		}
		fitting := domain.Fitting{
			CustomerID: c.ID, MeasurementID: &m.ID, OrderID: &order.ID, TailorID: &tailor.ID,
			ScheduledAt: now.AddDate(0, 0, 7+i).Truncate(time.Hour), Status: domain.FittingScheduled,
			Branch: "main", CreatedBy: &manager.ID,
		}
		if err := db.Create(&fitting).Error; err != nil {
			return err
		}
	}
	return nil
}
