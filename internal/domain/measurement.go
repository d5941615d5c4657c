package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Units string

const (
	UnitsMetric   Units = "cm"
	UnitsImperial Units = "in"
)

func (u Units) Valid() bool { return u == UnitsMetric || u == UnitsImperial }

// MeasurementFields is the fixed set of numeric body measurements, in form order.
var MeasurementFields = []string{
	"chest", "waist", "hip", "neck", "shoulder", "sleeve_length", "arm_hole", "bicep",
	"wrist", "shirt_length", "jacket_length", "trouser_length", "inseam", "thigh", "knee",
	"calf", "ankle", "rise",
}

func IsMeasurementField(name string) bool {
	for _, f := range MeasurementFields {
		if f == name {
			return true
		}
	}
	return false
}

type MeasurementValues struct {
	Chest         *float64 `json:"chest,omitempty"`
	Waist         *float64 `json:"waist,omitempty"`
	Hip           *float64 `json:"hip,omitempty"`
	Neck          *float64 `json:"neck,omitempty"`
	Shoulder      *float64 `json:"shoulder,omitempty"`
	SleeveLength  *float64 `json:"sleeve_length,omitempty"`
	ArmHole       *float64 `json:"arm_hole,omitempty"`
	Bicep         *float64 `json:"bicep,omitempty"`
	Wrist         *float64 `json:"wrist,omitempty"`
	ShirtLength   *float64 `json:"shirt_length,omitempty"`
	JacketLength  *float64 `json:"jacket_length,omitempty"`
	TrouserLength *float64 `json:"trouser_length,omitempty"`
	Inseam        *float64 `json:"inseam,omitempty"`
	Thigh         *float64 `json:"thigh,omitempty"`
	Knee          *float64 `json:"knee,omitempty"`
	Calf          *float64 `json:"calf,omitempty"`
	Ankle         *float64 `json:"ankle,omitempty"`
	Rise          *float64 `json:"rise,omitempty"`
}

func (v *MeasurementValues) slots() map[string]**float64 {
	return map[string]**float64{
		"chest":          &v.Chest,
		"waist":          &v.Waist,
		"hip":            &v.Hip,
		"neck":           &v.Neck,
		"shoulder":       &v.Shoulder,
		"sleeve_length":  &v.SleeveLength,
		"arm_hole":       &v.ArmHole,
		"bicep":          &v.Bicep,
		"wrist":          &v.Wrist,
		"shirt_length":   &v.ShirtLength,
		"jacket_length":  &v.JacketLength,
		"trouser_length": &v.TrouserLength,
		"inseam":         &v.Inseam,
		"thigh":          &v.Thigh,
		"knee":           &v.Knee,
		"calf":           &v.Calf,
		"ankle":          &v.Ankle,
		"rise":           &v.Rise,
	}
}

func (v *MeasurementValues) Get(field string) *float64 {
	if slot, ok := v.slots()[field]; ok {
		return *slot
	}
	return nil
}

// Set stores value under field; unknown fields are ignored.
func (v *MeasurementValues) Set(field string, value *float64) {
	if slot, ok := v.slots()[field]; ok {
		*slot = value
	}
}

// Map returns the present values keyed by field name.
func (v *MeasurementValues) Map() map[string]any {
	out := make(map[string]any)
	for name, slot := range v.slots() {
		if *slot != nil {
			out[name] = **slot
		}
	}
	return out
}

type Measurement struct {
	ID            int64      `json:"id" gorm:"primaryKey"`
	EntryID       string     `json:"entry_id" gorm:"size:20;not null;uniqueIndex"`
	CustomerID    int64      `json:"customer_id" gorm:"not null;index"`
	ProfileID     *int64     `json:"profile_id,omitempty" gorm:"index"`
	Units         Units      `json:"units" gorm:"size:2;not null;default:cm"`
	FitPreference string     `json:"fit_preference,omitempty" gorm:"size:50"`
	Notes         string     `json:"notes,omitempty" gorm:"type:text"`
	Version       int        `json:"version" gorm:"not null;default:1"`
	IsExpired     bool       `json:"is_expired" gorm:"not null;default:false;index"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	CreatedBy     *int64     `json:"created_by,omitempty"`
	Branch        string     `json:"branch,omitempty" gorm:"size:100;index"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	MeasurementValues `gorm:"embedded"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

func (Measurement) TableName() string { return "measurements" }

type HistoryAction string

const (
	HistoryCreated HistoryAction = "created"
	HistoryUpdated HistoryAction = "updated"
)

// MeasurementHistory rows are append-only.
type MeasurementHistory struct {
	ID            int64             `json:"id" gorm:"primaryKey"`
	MeasurementID int64             `json:"measurement_id" gorm:"not null;index"`
	Version       int               `json:"version"`
	Action        HistoryAction     `json:"action" gorm:"size:20;not null"`
	Changes       datatypes.JSONMap `json:"changes"`
	ChangedBy     *int64            `json:"changed_by,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

func (MeasurementHistory) TableName() string { return "measurement_history" }

type MeasurementProfile struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	CustomerID  int64     `json:"customer_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatedBy   *int64    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MeasurementProfile) TableName() string { return "measurement_profiles" }

type TemplateField struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Default *float64 `json:"default,omitempty"`
}

type MeasurementTemplate struct {
	ID          int64                                       `json:"id" gorm:"primaryKey"`
	Name        string                                      `json:"name" gorm:"size:255;not null"`
	GarmentType string                                      `json:"garment_type" gorm:"size:50;not null;index"`
	Region      string                                      `json:"region,omitempty" gorm:"size:50"`
	Units       Units                                       `json:"units" gorm:"size:2;not null;default:cm"`
	Fields      datatypes.JSONType[map[string]TemplateField] `json:"fields"`
	CreatedBy   *int64                                      `json:"created_by,omitempty"`
	CreatedAt   time.Time                                   `json:"created_at"`
	UpdatedAt   time.Time                                   `json:"updated_at"`
}

func (MeasurementTemplate) TableName() string { return "measurement_templates" }

type FitFeedback string

const (
	FitTooTight      FitFeedback = "too_tight"
	FitSlightlyTight FitFeedback = "slightly_tight"
	FitPerfect       FitFeedback = "perfect"
	FitSlightlyLoose FitFeedback = "slightly_loose"
	FitTooLoose      FitFeedback = "too_loose"
)

var FitFeedbackValues = []FitFeedback{FitTooTight, FitSlightlyTight, FitPerfect, FitSlightlyLoose, FitTooLoose}

type GarmentFeedback struct {
	ID            int64       `json:"id" gorm:"primaryKey"`
	MeasurementID int64       `json:"measurement_id" gorm:"not null;index"`
	OrderID       *int64      `json:"order_id,omitempty" gorm:"index"`
	GarmentType   string      `json:"garment_type" gorm:"size:50;not null"`
	FitFeedback   FitFeedback `json:"fit_feedback" gorm:"size:20;not null"`
	Notes         string      `json:"notes,omitempty" gorm:"type:text"`
	CreatedBy     *int64      `json:"created_by,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

func (GarmentFeedback) TableName() string { return "garment_feedback" }
