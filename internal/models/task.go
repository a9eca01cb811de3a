package models

import "time"

type Task struct {
	ID          uint64    `gorm:"primarykey" json:"_id"`
	Description string    `gorm:"type:varchar(255);not null" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	OwnerID     uint64    `gorm:"not null;index" json:"owner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
