package models

import (
	"time"
)

type CustomerInfo struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FullName    string    `gorm:"size:255;not null" json:"fullName"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	Address     string    `gorm:"size:500;not null" json:"address"`
	PhoneNumber string    `gorm:"size:20;not null" json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (CustomerInfo) TableName() string {
	return "customer_info"
}
