package domain

import "time"

type Customer struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Phone     string    `json:"phone,omitempty" gorm:"size:32;index"`
	Email     string    `json:"email,omitempty" gorm:"size:255"`
	Address   string    `json:"address,omitempty" gorm:"type:text"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	Branch    string    `json:"branch,omitempty" gorm:"size:100"`
	CreatedBy *int64    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Customer) TableName() string { return "customers" }
